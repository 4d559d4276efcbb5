package web

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mbenner/invtrack/internal/db"
	"github.com/mbenner/invtrack/internal/export"
	"github.com/mbenner/invtrack/internal/model"
	"github.com/mbenner/invtrack/internal/store"
)

// recordingMailer captures outbound notifications instead of sending them.
type recordingMailer struct {
	subjects []string
}

func (m *recordingMailer) Send(_ context.Context, subject, _ string) error {
	m.subjects = append(m.subjects, subject)
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *sql.DB, *recordingMailer) {
	t.Helper()

	database := db.NewTestDB(t)
	mailer := &recordingMailer{}

	router, err := NewRouter(database, "test-secret", mailer)
	require.NoError(t, err)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return ts, database, mailer
}

func newClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func createActiveUser(t *testing.T, database *sql.DB, username, password, role string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user, err := store.CreateUser(context.Background(), database, username,
		string(hash), "Jane", "Doe", username+"@example.com", role, true)
	require.NoError(t, err)
	return user
}

func login(t *testing.T, client *http.Client, baseURL, username, password string) *http.Response {
	t.Helper()

	resp, err := client.PostForm(baseURL+"/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestLoginFlow(t *testing.T) {
	ts, database, _ := newTestServer(t)
	createActiveUser(t, database, "jdoe", "hunter2", model.RoleMember)

	client := newClient(t)
	resp := login(t, client, ts.URL, "jdoe", "hunter2")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/summary", resp.Header.Get("Location"))

	// The session cookie now grants access to protected pages.
	resp, err := client.Get(ts.URL + "/inventory")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Inventory")
}

func TestLoginWrongPassword(t *testing.T) {
	ts, database, _ := newTestServer(t)
	createActiveUser(t, database, "jdoe", "hunter2", "")

	client := newClient(t)
	resp, err := client.PostForm(ts.URL+"/login", url.Values{
		"username": {"jdoe"},
		"password": {"wrong"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or password.")
}

func TestLoginInactiveAccount(t *testing.T) {
	ts, database, _ := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	require.NoError(t, err)
	_, err = store.CreateUser(context.Background(), database, "newbie",
		string(hash), "New", "User", "newbie@example.com", "", false)
	require.NoError(t, err)

	client := newClient(t)
	resp, err := client.PostForm(ts.URL+"/login", url.Values{
		"username": {"newbie"},
		"password": {"hunter2"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Contact the administrator to activate your account!")
}

func TestProtectedPagesRedirectToLogin(t *testing.T) {
	ts, _, _ := newTestServer(t)
	client := newClient(t)

	for _, path := range []string{"/summary", "/inventory", "/items/new", "/profile", "/users"} {
		resp, err := client.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}
}

func TestRegisterCreatesInactiveUserAndAlertsAdmin(t *testing.T) {
	ts, database, mailer := newTestServer(t)
	client := newClient(t)

	resp, err := client.PostForm(ts.URL+"/register", url.Values{
		"first_name": {"Jane"},
		"last_name":  {"Doe"},
		"username":   {"jdoe"},
		"email":      {"jdoe@example.com"},
		"password1":  {"hunter2"},
		"password2":  {"hunter2"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "Email sent to Admin to activate your account.")

	user, err := store.GetUserByUsername(context.Background(), database, "jdoe")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.False(t, user.Active, "registrations start inactive")

	require.Len(t, mailer.subjects, 1)
	assert.Equal(t, "New User Registered For Inventory App", mailer.subjects[0])
}

func TestRegisterRejectsMismatchedPasswords(t *testing.T) {
	ts, database, _ := newTestServer(t)
	client := newClient(t)

	resp, err := client.PostForm(ts.URL+"/register", url.Values{
		"first_name": {"Jane"},
		"last_name":  {"Doe"},
		"username":   {"jdoe"},
		"email":      {"jdoe@example.com"},
		"password1":  {"hunter2"},
		"password2":  {"different"},
	})
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "Passwords do not match.")

	user, err := store.GetUserByUsername(context.Background(), database, "jdoe")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestCheckUsernameFragment(t *testing.T) {
	ts, database, _ := newTestServer(t)
	createActiveUser(t, database, "jdoe", "hunter2", "")
	client := newClient(t)

	resp, err := client.PostForm(ts.URL+"/register/check-username", url.Values{"username": {"jdoe"}})
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "This username already exists!")

	resp, err = client.PostForm(ts.URL+"/register/check-username", url.Values{"username": {"someone"}})
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "This username is available.")
}

func TestAreaOptionsFragment(t *testing.T) {
	ts, database, _ := newTestServer(t)
	createActiveUser(t, database, "jdoe", "hunter2", model.RoleMember)

	ctx := context.Background()
	hq, err := store.CreateReference(ctx, database, model.KindLocation, "HQ")
	require.NoError(t, err)
	warehouse, err := store.CreateReference(ctx, database, model.KindLocation, "Warehouse")
	require.NoError(t, err)
	_, err = store.CreateArea(ctx, database, "Server Room", hq.ID)
	require.NoError(t, err)
	_, err = store.CreateArea(ctx, database, "Dock", warehouse.ID)
	require.NoError(t, err)

	client := newClient(t)
	login(t, client, ts.URL, "jdoe", "hunter2")

	resp, err := client.Get(ts.URL + "/items/areas?location=" + itoa(hq.ID))
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "Server Room")
	assert.NotContains(t, body, "Dock")

	// No location selected yields an empty option list, not an error.
	resp, err = client.Get(ts.URL + "/items/areas")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "No areas for this location")
}

func TestExportDownload(t *testing.T) {
	ts, database, _ := newTestServer(t)
	createActiveUser(t, database, "jdoe", "hunter2", model.RoleMember)

	client := newClient(t)
	login(t, client, ts.URL, "jdoe", "hunter2")

	resp, err := client.Get(ts.URL + "/inventory/export")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventory.csv")
	assert.Equal(t, strings.Join(export.Columns, ",")+"\n", body)
}

func TestUsersPageRequiresAdmin(t *testing.T) {
	ts, database, _ := newTestServer(t)
	createActiveUser(t, database, "member", "hunter2", model.RoleMember)

	client := newClient(t)
	login(t, client, ts.URL, "member", "hunter2")

	resp, err := client.Get(ts.URL + "/users")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminActivatesUser(t *testing.T) {
	ts, database, _ := newTestServer(t)
	createActiveUser(t, database, "admin", "hunter2", model.RoleAdmin)

	pending, err := store.CreateUser(context.Background(), database, "newbie",
		"hash", "New", "User", "newbie@example.com", "", false)
	require.NoError(t, err)

	client := newClient(t)
	login(t, client, ts.URL, "admin", "hunter2")

	resp, err := client.PostForm(ts.URL+"/users/"+itoa(pending.ID)+"/activate", url.Values{
		"active": {"1"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	got, err := store.GetUser(context.Background(), database, pending.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)
}

func TestLogoutRevokesSession(t *testing.T) {
	ts, database, _ := newTestServer(t)
	createActiveUser(t, database, "jdoe", "hunter2", model.RoleMember)

	client := newClient(t)
	login(t, client, ts.URL, "jdoe", "hunter2")

	resp, err := client.PostForm(ts.URL+"/logout", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	// The old session no longer works.
	resp, err = client.Get(ts.URL + "/inventory")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestItemEditValidationRedisplaysForm(t *testing.T) {
	ts, database, _ := newTestServer(t)
	user := createActiveUser(t, database, "jdoe", "hunter2", model.RoleMember)

	ctx := context.Background()
	status, err := store.CreateReference(ctx, database, model.KindStatus, "Deployed")
	require.NoError(t, err)
	location, err := store.CreateReference(ctx, database, model.KindLocation, "HQ")
	require.NoError(t, err)
	area, err := store.CreateArea(ctx, database, "Server Room", location.ID)
	require.NoError(t, err)
	mfg, err := store.CreateReference(ctx, database, model.KindManufacturer, "Dell")
	require.NoError(t, err)
	approver, err := store.CreateReference(ctx, database, model.KindApprover, "CTO")
	require.NoError(t, err)

	item, err := store.CreateItem(ctx, database, &model.Item{
		Name:           "Laptop",
		StatusID:       status.ID,
		LocationID:     location.ID,
		AreaID:         area.ID,
		ManufacturerID: mfg.ID,
		Qty:            1,
		ApproverID:     approver.ID,
		InsertedBy:     user.ID,
	})
	require.NoError(t, err)

	client := newClient(t)
	login(t, client, ts.URL, "jdoe", "hunter2")

	// A validation failure redisplays the edit form with the message, it
	// does not redirect.
	resp, err := client.PostForm(ts.URL+"/items/"+itoa(item.ID)+"/edit", url.Values{
		"name": {""},
	})
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Item name is required.")
	assert.Contains(t, body, "Edit Laptop")

	// Nothing was saved.
	got, err := store.GetItem(ctx, database, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", got.Name)
}

func TestAdminViewsContactMessages(t *testing.T) {
	ts, database, _ := newTestServer(t)
	createActiveUser(t, database, "admin", "hunter2", model.RoleAdmin)
	createActiveUser(t, database, "member", "hunter2", model.RoleMember)

	client := newClient(t)
	resp, err := client.PostForm(ts.URL+"/contact", url.Values{
		"fullname":        {"Jane Visitor"},
		"contact_email":   {"jane@example.com"},
		"contact_subject": {"Missing column"},
		"contact_message": {"The export is missing a column."},
	})
	require.NoError(t, err)
	resp.Body.Close()

	admin := newClient(t)
	login(t, admin, ts.URL, "admin", "hunter2")
	resp, err = admin.Get(ts.URL + "/messages")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Jane Visitor")
	assert.Contains(t, body, "Missing column")

	member := newClient(t)
	login(t, member, ts.URL, "member", "hunter2")
	resp, err = member.Get(ts.URL + "/messages")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLookupsPageOffersEveryKind(t *testing.T) {
	ts, database, _ := newTestServer(t)
	createActiveUser(t, database, "admin", "hunter2", model.RoleAdmin)

	client := newClient(t)
	login(t, client, ts.URL, "admin", "hunter2")

	resp, err := client.Get(ts.URL + "/lookups")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	for _, label := range []string{"Location", "Area", "Manufacturer", "Status", "Assignee", "Approver"} {
		assert.Contains(t, body, ">"+label+"</option>")
	}

	resp, err = client.PostForm(ts.URL+"/lookups", url.Values{
		"kind": {"location"},
		"name": {"HQ"},
	})
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Contains(t, body, "Saved.")
	assert.Contains(t, body, "HQ")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
