// Dayflow - HR Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dayflow

package authz

import (
	"strings"
	"testing"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

func TestEnforcer_DefaultPolicy(t *testing.T) {
	e, err := NewEnforcer(nil)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	tests := []struct {
		role   string
		object string
		action string
		want   bool
	}{
		{"Employee", ObjectNotifications, ActionRead, true},
		{"Employee", ObjectNotifications, ActionUpdate, true},
		{"Employee", ObjectEvents, ActionPublish, false},
		{"Admin", ObjectNotifications, ActionRead, true},
		{"Admin", ObjectEvents, ActionPublish, true},
		{"Service", ObjectEvents, ActionPublish, true},
		{"Contractor", ObjectNotifications, ActionRead, true},
		{"Contractor", ObjectEvents, ActionPublish, false},
		{"Admin", ObjectNotifications, "delete", false},
		{"Admin", "payroll", ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.object+"/"+tt.action, func(t *testing.T) {
			got, err := e.Enforce(tt.role, tt.object, tt.action)
			if err != nil {
				t.Fatalf("Enforce() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Enforce() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnforcer_PublisherRoles(t *testing.T) {
	e, err := NewEnforcer(&EnforcerConfig{PublisherRoles: []string{" Service ", ""}})
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	if ok, _ := e.Enforce("Service", ObjectEvents, ActionPublish); !ok {
		t.Error("Service should publish")
	}
	if ok, _ := e.Enforce("Admin", ObjectEvents, ActionPublish); ok {
		t.Error("Admin should not publish when not configured")
	}
	if ok, _ := e.Enforce("", ObjectEvents, ActionPublish); ok {
		t.Error("empty role should not publish")
	}
}

func TestEnforcer_CachedDecisions(t *testing.T) {
	e, err := NewEnforcer(&EnforcerConfig{PublisherRoles: []string{"Admin"}, CacheSize: 8, CacheTTL: time.Minute})
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if ok, err := e.Enforce("Admin", ObjectEvents, ActionPublish); err != nil || !ok {
			t.Fatalf("Enforce() = %v, %v", ok, err)
		}
	}
	hits, misses, size := e.cache.Stats()
	if hits != 2 || misses != 1 || size != 1 {
		t.Errorf("cache stats hits=%d misses=%d size=%d, want 2/1/1", hits, misses, size)
	}
}

func TestLoadPolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  string
		wantErr string
	}{
		{"comments and blanks", "# header\n\np, Admin, events, publish\n", ""},
		{"grouping", "g, Manager, Admin\n", ""},
		{"short p line", "p, Admin, events\n", "malformed policy"},
		{"short g line", "g, Manager\n", "malformed grouping"},
		{"unknown type", "x, a, b, c\n", "unknown policy type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := model.NewModelFromString(embeddedModel)
			if err != nil {
				t.Fatal(err)
			}
			enforcer, err := casbin.NewSyncedEnforcer(m)
			if err != nil {
				t.Fatal(err)
			}

			err = loadPolicy(enforcer, tt.policy)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("loadPolicy() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("loadPolicy() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadPolicy_GroupingInherits(t *testing.T) {
	m, _ := model.NewModelFromString(embeddedModel)
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		t.Fatal(err)
	}
	if err := loadPolicy(enforcer, "p, Admin, events, publish\ng, Manager, Admin\n"); err != nil {
		t.Fatal(err)
	}

	ok, err := enforcer.Enforce("Manager", ObjectEvents, ActionPublish)
	if err != nil || !ok {
		t.Errorf("Manager should inherit Admin publish, got %v, %v", ok, err)
	}
}
