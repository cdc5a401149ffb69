package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cort_fleet/internal/models"
)

func TestCompanyCreate(t *testing.T) {
	t.Run("super admin creates a company", func(t *testing.T) {
		db, _, r := newEnv(t)
		seedUser(t, db, "super", models.RoleSuperAdmin, models.StatusActive, nil)

		w := do(r, http.MethodPost, "/companies/create", "tok-super", map[string]interface{}{
			"name":  "Acme Corporation",
			"email": "contact@acme.com",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var count int64
		db.Model(&models.Company{}).Where("email = ?", "contact@acme.com").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("company admin is forbidden", func(t *testing.T) {
		db, _, r := newEnv(t)
		seedUser(t, db, "admin5", models.RoleCompanyAdmin, models.StatusActive, uintPtr(5))

		w := do(r, http.MethodPost, "/companies/create", "tok-admin5", map[string]interface{}{
			"name":  "Rogue Co",
			"email": "rogue@example.com",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		db, _, r := newEnv(t)
		seedUser(t, db, "super", models.RoleSuperAdmin, models.StatusActive, nil)
		seedCompany(t, db, 1, "First", "taken@acme.com")

		w := do(r, http.MethodPost, "/companies/create", "tok-super", map[string]interface{}{
			"name":  "Second",
			"email": "taken@acme.com",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing name is invalid", func(t *testing.T) {
		db, _, r := newEnv(t)
		seedUser(t, db, "super", models.RoleSuperAdmin, models.StatusActive, nil)

		w := do(r, http.MethodPost, "/companies/create", "tok-super", map[string]interface{}{
			"email": "contact@acme.com",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCompanyList(t *testing.T) {
	t.Run("company admin only sees its own company", func(t *testing.T) {
		db, _, r := newEnv(t)
		seedCompany(t, db, 5, "Mine", "mine@acme.com")
		seedCompany(t, db, 9, "Theirs", "theirs@acme.com")
		seedUser(t, db, "admin5", models.RoleCompanyAdmin, models.StatusActive, uintPtr(5))

		w := do(r, http.MethodGet, "/companies/list", "tok-admin5", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var companies []models.Company
		pagination := decodePaginated(t, w, &companies)
		require.Len(t, companies, 1)
		assert.Equal(t, uint(5), companies[0].ID)
		assert.Equal(t, int64(1), pagination.Total)
	})

	t.Run("super admin sees everything paginated", func(t *testing.T) {
		db, _, r := newEnv(t)
		for i := 1; i <= 25; i++ {
			seedCompany(t, db, uint(i), fmt.Sprintf("Company %d", i), fmt.Sprintf("c%d@acme.com", i))
		}
		seedUser(t, db, "super", models.RoleSuperAdmin, models.StatusActive, nil)

		w := do(r, http.MethodGet, "/companies/list?page=1&limit=10", "tok-super", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var companies []models.Company
		pagination := decodePaginated(t, w, &companies)
		assert.Len(t, companies, 10)
		assert.Equal(t, int64(25), pagination.Total)
		assert.Equal(t, 3, pagination.Pages)
		assert.True(t, pagination.HasNext)
		assert.False(t, pagination.HasPrev)

		w = do(r, http.MethodGet, "/companies/list?page=3&limit=10", "tok-super", nil)
		pagination = decodePaginated(t, w, &companies)
		assert.Len(t, companies, 5)
		assert.False(t, pagination.HasNext)
		assert.True(t, pagination.HasPrev)
	})

	t.Run("employee is forbidden", func(t *testing.T) {
		db, _, r := newEnv(t)
		seedUser(t, db, "emp", models.RoleEmployee, models.StatusActive, uintPtr(5))

		w := do(r, http.MethodGet, "/companies/list", "tok-emp", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCompanyGet(t *testing.T) {
	db, _, r := newEnv(t)
	seedCompany(t, db, 5, "Mine", "mine@acme.com")
	seedCompany(t, db, 9, "Theirs", "theirs@acme.com")
	seedUser(t, db, "super", models.RoleSuperAdmin, models.StatusActive, nil)
	seedUser(t, db, "emp5", models.RoleEmployee, models.StatusActive, uintPtr(5))

	t.Run("employee reads own company", func(t *testing.T) {
		w := do(r, http.MethodGet, "/companies/5", "tok-emp5", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("employee cannot read another company", func(t *testing.T) {
		w := do(r, http.MethodGet, "/companies/9", "tok-emp5", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("super admin reads any company", func(t *testing.T) {
		w := do(r, http.MethodGet, "/companies/9", "tok-super", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing company is 404 for super admin", func(t *testing.T) {
		w := do(r, http.MethodGet, "/companies/404", "tok-super", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCompanyUpdate(t *testing.T) {
	t.Run("company admin updates own company", func(t *testing.T) {
		db, _, r := newEnv(t)
		seedCompany(t, db, 5, "Old Name", "mine@acme.com")
		seedUser(t, db, "admin5", models.RoleCompanyAdmin, models.StatusActive, uintPtr(5))

		w := do(r, http.MethodPatch, "/companies/update/5", "tok-admin5", map[string]interface{}{
			"name": "New Name",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var company models.Company
		require.NoError(t, db.First(&company, 5).Error)
		assert.Equal(t, "New Name", company.Name)
		assert.Equal(t, "mine@acme.com", company.Email)
	})

	t.Run("company admin cannot update another company", func(t *testing.T) {
		db, _, r := newEnv(t)
		seedCompany(t, db, 9, "Theirs", "theirs@acme.com")
		seedUser(t, db, "admin5", models.RoleCompanyAdmin, models.StatusActive, uintPtr(5))

		w := do(r, http.MethodPatch, "/companies/update/9", "tok-admin5", map[string]interface{}{
			"name": "Hijacked",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("email change to a taken address conflicts", func(t *testing.T) {
		db, _, r := newEnv(t)
		seedCompany(t, db, 5, "Mine", "mine@acme.com")
		seedCompany(t, db, 9, "Theirs", "theirs@acme.com")
		seedUser(t, db, "super", models.RoleSuperAdmin, models.StatusActive, nil)

		w := do(r, http.MethodPatch, "/companies/update/5", "tok-super", map[string]interface{}{
			"email": "theirs@acme.com",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestCompanyDelete(t *testing.T) {
	t.Run("blocked while users remain", func(t *testing.T) {
		db, _, r := newEnv(t)
		seedCompany(t, db, 5, "Busy", "busy@acme.com")
		seedUser(t, db, "super", models.RoleSuperAdmin, models.StatusActive, nil)
		seedUser(t, db, "emp5", models.RoleEmployee, models.StatusActive, uintPtr(5))

		w := do(r, http.MethodDelete, "/companies/delete/5", "tok-super", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("blocked while vehicles remain", func(t *testing.T) {
		db, _, r := newEnv(t)
		seedCompany(t, db, 5, "Busy", "busy@acme.com")
		seedVehicle(t, db, "ABC-123", uintPtr(5))
		seedUser(t, db, "super", models.RoleSuperAdmin, models.StatusActive, nil)

		w := do(r, http.MethodDelete, "/companies/delete/5", "tok-super", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("blocked while routes remain", func(t *testing.T) {
		db, _, r := newEnv(t)
		seedCompany(t, db, 5, "Busy", "busy@acme.com")
		require.NoError(t, db.Create(&models.Route{Name: "Morning Shuttle", CompanyID: uintPtr(5)}).Error)
		seedUser(t, db, "super", models.RoleSuperAdmin, models.StatusActive, nil)

		w := do(r, http.MethodDelete, "/companies/delete/5", "tok-super", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("deletes once empty", func(t *testing.T) {
		db, _, r := newEnv(t)
		seedCompany(t, db, 5, "Empty", "empty@acme.com")
		seedUser(t, db, "super", models.RoleSuperAdmin, models.StatusActive, nil)

		w := do(r, http.MethodDelete, "/companies/delete/5", "tok-super", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var count int64
		db.Model(&models.Company{}).Where("id = ?", 5).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("company admin is forbidden", func(t *testing.T) {
		db, _, r := newEnv(t)
		seedCompany(t, db, 5, "Empty", "empty@acme.com")
		seedUser(t, db, "admin5", models.RoleCompanyAdmin, models.StatusActive, uintPtr(5))

		w := do(r, http.MethodDelete, "/companies/delete/5", "tok-admin5", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
