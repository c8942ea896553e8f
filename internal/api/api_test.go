package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aweston/charkeep/internal/api"
	"github.com/aweston/charkeep/internal/api/response"
	"github.com/aweston/charkeep/internal/factory"
	"github.com/aweston/charkeep/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := testutil.NopLogger()

	app := factory.NewTestApp()
	require.NoError(t, app.CatalogService.EnsureDefaults(context.Background()))

	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		AuthService:      app.AuthService,
		UserService:      app.UserService,
		CharacterService: app.CharacterService,
		CatalogService:   app.CatalogService,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// register creates an account and returns the token pair
func (ts *testServer) register(t *testing.T, username string) response.TokenPair {
	t.Helper()

	body := map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	}
	rr := ts.request(http.MethodPost, "/register/", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var pair response.TokenPair
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pair))
	return pair
}

// createUser creates a user via the CRUD endpoint and returns it
func (ts *testServer) createUser(t *testing.T, username string) response.User {
	t.Helper()

	body := map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	}
	rr := ts.request(http.MethodPost, "/user/", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var user response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	return user
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	pair := ts.register(t, "alice")
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	rr := ts.request(http.MethodPost, "/login/", map[string]string{
		"username": "alice",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginPair response.TokenPair
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginPair))
	assert.NotEmpty(t, loginPair.Access)
}

func TestLoginUnknownUsernameIs404(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/login/", map[string]string{
		"username": "nobody",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLoginWrongPasswordIs401(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	rr := ts.request(http.MethodPost, "/login/", map[string]string{
		"username": "alice",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotContains(t, rr.Body.String(), "access")
}

func TestRegisterDuplicateUsernameIs409(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	rr := ts.request(http.MethodPost, "/register/", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestProtectedEndpoint(t *testing.T) {
	ts := newTestServer(t)
	pair := ts.register(t, "alice")

	rr := ts.request(http.MethodGet, "/protected/", nil, pair.Access)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Hello alice, you are authenticated!")
}

func TestProtectedEndpointWithoutTokenIs401(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/protected/", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProtectedEndpointRejectsRefreshToken(t *testing.T) {
	ts := newTestServer(t)
	pair := ts.register(t, "alice")

	rr := ts.request(http.MethodGet, "/protected/", nil, pair.Refresh)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMeReturnsClaims(t *testing.T) {
	ts := newTestServer(t)
	pair := ts.register(t, "alice")

	rr := ts.request(http.MethodGet, "/user/", nil, pair.Access)
	require.Equal(t, http.StatusOK, rr.Code)

	var me response.CurrentUser
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, "alice@example.com", me.Email)
}

func TestCreateAndGetUser(t *testing.T) {
	ts := newTestServer(t)

	created := ts.createUser(t, "alice")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "alice", created.Username)

	rr := ts.request(http.MethodGet, "/user/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var fetched response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
}

func TestCreateEndpointsReturn200(t *testing.T) {
	ts := newTestServer(t)

	userRR := ts.request(http.MethodPost, "/user/", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusOK, userRR.Code)

	var user response.User
	require.NoError(t, json.Unmarshal(userRR.Body.Bytes(), &user))

	charRR := ts.request(http.MethodPost, "/characters/", map[string]any{
		"name": "Zog",
		"user": user.ID,
		"xp":   0,
	}, "")
	assert.Equal(t, http.StatusOK, charRR.Code)

	phoneRR := ts.request(http.MethodPost, "/users/"+user.ID+"/parent-phones/", map[string]string{
		"phone_number": "555-0100",
	}, "")
	assert.Equal(t, http.StatusOK, phoneRR.Code)
}

func TestGetUserMalformedIDIs400(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/user/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetUnknownUserIs404(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/user/00000000-0000-0000-0000-000000000000", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListUsersSerializesRelationsEagerly(t *testing.T) {
	ts := newTestServer(t)

	user := ts.createUser(t, "alice")

	// Empty relations come back as [], not null
	rr := ts.request(http.MethodGet, "/users/", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"characters":[]`)
	assert.Contains(t, rr.Body.String(), `"parent_phones":[]`)

	// Populate relations
	charRR := ts.request(http.MethodPost, "/characters/", map[string]any{
		"name": "Fenwick",
		"user": user.ID,
		"xp":   5,
	}, "")
	require.Equal(t, http.StatusOK, charRR.Code)

	phoneRR := ts.request(http.MethodPost, "/users/"+user.ID+"/parent-phones/", map[string]string{
		"phone_number": "555-0199",
		"parent_name":  "Mum",
	}, "")
	require.Equal(t, http.StatusOK, phoneRR.Code)

	rr = ts.request(http.MethodGet, "/users/", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var users []response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	require.Len(t, users, 1)
	require.Len(t, users[0].Characters, 1)
	assert.Equal(t, "Fenwick", users[0].Characters[0].Name)
	require.Len(t, users[0].ParentPhones, 1)
	assert.Equal(t, "555-0199", users[0].ParentPhones[0].PhoneNumber)
}

func TestUpdateUserIsFullReplace(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "alice")

	rr := ts.request(http.MethodPut, "/user/"+user.ID, map[string]string{
		"username": "alicia",
		"email":    "alicia@example.com",
		"password": "newsecret",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var updated response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, user.ID, updated.ID)
	assert.Equal(t, "alicia", updated.Username)
	assert.Empty(t, updated.PersonalPhone)
}

func TestDeleteUserCascades(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "alice")

	charRR := ts.request(http.MethodPost, "/characters/", map[string]any{
		"name": "Fenwick",
		"user": user.ID,
	}, "")
	require.Equal(t, http.StatusOK, charRR.Code)

	var ch response.Character
	require.NoError(t, json.Unmarshal(charRR.Body.Bytes(), &ch))

	rr := ts.request(http.MethodDelete, "/user/"+user.ID, nil, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = ts.request(http.MethodGet, "/characters/"+ch.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCharacterCreateListForUser(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "alice")

	for _, name := range []string{"Fenwick", "Lyra"} {
		rr := ts.request(http.MethodPost, "/characters/", map[string]any{
			"name": name,
			"user": user.ID,
		}, "")
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := ts.request(http.MethodGet, "/user/"+user.ID+"/characters/", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var characters []response.Character
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &characters))
	require.Len(t, characters, 2)
	assert.Equal(t, "Fenwick", characters[0].Name)
	assert.Equal(t, "Lyra", characters[1].Name)
}

func TestCharacterWithRaceAndReligion(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "alice")

	racesRR := ts.request(http.MethodGet, "/races/", nil, "")
	require.Equal(t, http.StatusOK, racesRR.Code)
	var races []response.Race
	require.NoError(t, json.Unmarshal(racesRR.Body.Bytes(), &races))
	require.NotEmpty(t, races)

	rr := ts.request(http.MethodPost, "/characters/", map[string]any{
		"name": "Fenwick",
		"user": user.ID,
		"race": races[0].ID,
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var ch response.Character
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ch))
	require.NotNil(t, ch.Race)
	assert.Equal(t, races[0].ID, *ch.Race)
	assert.Nil(t, ch.Religion)

	// Religion stays absent in the serialized form
	getRR := ts.request(http.MethodGet, "/characters/"+ch.ID, nil, "")
	require.Equal(t, http.StatusOK, getRR.Code)
	assert.NotContains(t, getRR.Body.String(), "religion")
}

func TestCharacterUnknownRaceIs422(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "alice")

	rr := ts.request(http.MethodPost, "/characters/", map[string]any{
		"name": "Fenwick",
		"user": user.ID,
		"race": "00000000-0000-0000-0000-000000000000",
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestCharacterUnknownUserIs422(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/characters/", map[string]any{
		"name": "Fenwick",
		"user": "00000000-0000-0000-0000-000000000000",
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestCharacterNegativeXPIs400(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "alice")

	rr := ts.request(http.MethodPost, "/characters/", map[string]any{
		"name": "Fenwick",
		"user": user.ID,
		"xp":   -1,
	}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCharacterUpdateAndDelete(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "alice")

	createRR := ts.request(http.MethodPost, "/characters/", map[string]any{
		"name": "Fenwick",
		"user": user.ID,
		"xp":   5,
	}, "")
	require.Equal(t, http.StatusOK, createRR.Code)
	var ch response.Character
	require.NoError(t, json.Unmarshal(createRR.Body.Bytes(), &ch))

	rr := ts.request(http.MethodPut, "/characters/"+ch.ID, map[string]any{
		"name": "Fenwick the Bold",
		"user": user.ID,
		"xp":   20,
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var updated response.Character
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, ch.ID, updated.ID)
	assert.Equal(t, 20, updated.XP)

	rr = ts.request(http.MethodDelete, "/characters/"+ch.ID, nil, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/characters/"+ch.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestParentPhoneLifecycle(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "alice")

	createRR := ts.request(http.MethodPost, "/users/"+user.ID+"/parent-phones/", map[string]string{
		"phone_number": "555-0199",
		"parent_name":  "Mum",
	}, "")
	require.Equal(t, http.StatusOK, createRR.Code)
	var phone response.ParentPhone
	require.NoError(t, json.Unmarshal(createRR.Body.Bytes(), &phone))

	listRR := ts.request(http.MethodGet, "/users/"+user.ID+"/parent-phones/", nil, "")
	require.Equal(t, http.StatusOK, listRR.Code)
	var phones []response.ParentPhone
	require.NoError(t, json.Unmarshal(listRR.Body.Bytes(), &phones))
	require.Len(t, phones, 1)
	assert.Equal(t, phone.ID, phones[0].ID)

	rr := ts.request(http.MethodDelete, "/parent-phones/"+phone.ID, nil, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodDelete, "/parent-phones/"+phone.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestParentPhonesForUnknownUserIs404(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/users/00000000-0000-0000-0000-000000000000/parent-phones/", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/races/", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var races []response.Race
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &races))
	assert.NotEmpty(t, races)

	rr = ts.request(http.MethodGet, "/religions/", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var religions []response.Religion
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &religions))
	assert.NotEmpty(t, religions)
}

func TestMalformedBodyIs400(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/register/", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
