package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tasknity/tasknity-api/internal/models"
)

func TestSatisfies(t *testing.T) {
	tests := []struct {
		name      string
		role      models.Role
		whitelist []models.Role
		want      bool
	}{
		{"member rejected by staff route", models.RoleMember, Staff, false},
		{"member accepted by contributor route", models.RoleMember, Contributors, true},
		{"owner passes whitelist without owner", models.RoleOwner, []models.Role{models.RoleAdmin}, true},
		{"owner passes viewer-only whitelist", models.RoleOwner, []models.Role{models.RoleViewer}, true},
		{"admin passes staff route", models.RoleAdmin, Staff, true},
		{"viewer rejected by contributor route", models.RoleViewer, Contributors, false},
		{"empty whitelist admits viewer", models.RoleViewer, nil, true},
		{"unknown role rejected", models.Role("ROOT"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Satisfies(tt.role, tt.whitelist))
		})
	}
}

func TestCan(t *testing.T) {
	for _, c := range All {
		assert.True(t, Can(models.RoleOwner, c), c)
		assert.True(t, Can(models.RoleAdmin, c), c)
	}

	assert.True(t, Can(models.RoleMember, ManageTasks))
	assert.True(t, Can(models.RoleMember, MarkAttendance))
	assert.False(t, Can(models.RoleMember, ManageExpenses))
	assert.False(t, Can(models.RoleMember, ViewClassified))

	assert.True(t, Can(models.RoleViewer, ViewAnalytics))
	assert.False(t, Can(models.RoleViewer, ManageTasks))
	assert.False(t, Can(models.Role(""), ViewAnalytics))
}

func TestCapabilities(t *testing.T) {
	caps := Capabilities(models.RoleViewer)

	assert.Len(t, caps, len(All))
	assert.True(t, caps[ViewAnalytics])
	assert.False(t, caps[ManageProjects])
}
