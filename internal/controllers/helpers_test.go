package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cort_fleet/internal/apperr"
	"cort_fleet/internal/config"
	"cort_fleet/internal/identity"
	"cort_fleet/internal/models"
	"cort_fleet/internal/routes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeIdentity stands in for the provider: tokens resolve through a fixed
// map, and signup/signin outcomes are scripted per test.
type fakeIdentity struct {
	subjects      map[string]string
	signUpSubject string
	signUpErr     error
	signUpCalls   int
	signInSubject string
	signInErr     error
}

func (f *fakeIdentity) VerifyToken(_ context.Context, token string) (string, error) {
	if id, ok := f.subjects[token]; ok {
		return id, nil
	}
	// Tokens follow the "tok-<subject>" convention used by seedUser.
	if id, ok := strings.CutPrefix(token, "tok-"); ok {
		return id, nil
	}
	return "", apperr.Unauthenticated("Invalid token")
}

func (f *fakeIdentity) SignUp(_ context.Context, email, _ string) (string, *identity.Session, error) {
	f.signUpCalls++
	if f.signUpErr != nil {
		return "", nil, f.signUpErr
	}
	return f.signUpSubject, &identity.Session{AccessToken: "access-token"}, nil
}

func (f *fakeIdentity) SignIn(_ context.Context, _, _ string) (string, *identity.Session, error) {
	if f.signInErr != nil {
		return "", nil, f.signInErr
	}
	return f.signInSubject, &identity.Session{AccessToken: "access-token"}, nil
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Status  int             `json:"status"`
	Message string          `json:"message"`
}

type pageBlock struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

func newEnv(t *testing.T) (*gorm.DB, *fakeIdentity, *gin.Engine) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	fake := &fakeIdentity{subjects: map[string]string{}}
	return db, fake, routes.SetupRouter(db, fake)
}

// seedUser inserts a directory record; "tok-<id>" then authenticates as it.
func seedUser(t *testing.T, db *gorm.DB, id, role, status string, companyID *uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		ID:        id,
		Email:     id + "@example.com",
		FullName:  "Test User " + id,
		Role:      role,
		Status:    status,
		CompanyID: companyID,
	}).Error)
}

func seedCompany(t *testing.T, db *gorm.DB, id uint, name, email string) models.Company {
	t.Helper()
	company := models.Company{ID: id, Name: name, Email: email}
	require.NoError(t, db.Create(&company).Error)
	return company
}

func seedVehicle(t *testing.T, db *gorm.DB, plate string, ownerCompanyID *uint) models.Vehicle {
	t.Helper()
	vehicle := models.Vehicle{
		PlateNumber:    plate,
		Make:           "Toyota",
		Model:          "Corolla",
		Year:           2022,
		Category:       models.CategorySedan,
		Ownership:      models.OwnershipOwned,
		FuelAvgCity:    12.5,
		FuelAvgHighway: 15,
		OwnerCompanyID: ownerCompanyID,
	}
	require.NoError(t, db.Create(&vehicle).Error)
	return vehicle
}

func do(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func decodePaginated(t *testing.T, w *httptest.ResponseRecorder, items interface{}) pageBlock {
	t.Helper()
	env := decodeEnvelope(t, w)
	var data struct {
		Data       json.RawMessage `json:"data"`
		Pagination pageBlock       `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NoError(t, json.Unmarshal(data.Data, items))
	return data.Pagination
}

func uintPtr(v uint) *uint    { return &v }
func strPtr(v string) *string { return &v }
