package e2e

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type expense struct {
	ID          int64   `json:"id"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description *string `json:"description"`
}

// E2ETestSuite drives the running server over HTTP
type E2ETestSuite struct {
	suite.Suite
	pw      *playwright.Playwright
	request playwright.APIRequestContext
}

// SetupSuite runs once before all tests
func (suite *E2ETestSuite) SetupSuite() {
	pw, err := playwright.Run()
	require.NoError(suite.T(), err, "could not launch playwright")
	suite.pw = pw

	request, err := pw.Request.NewContext(playwright.APIRequestNewContextOptions{
		BaseURL: playwright.String(appURL),
	})
	require.NoError(suite.T(), err, "could not create request context")
	suite.request = request
}

// TearDownSuite runs once after all tests
func (suite *E2ETestSuite) TearDownSuite() {
	if suite.request != nil {
		suite.request.Dispose()
	}
	if suite.pw != nil {
		suite.pw.Stop()
	}
}

func (suite *E2ETestSuite) login(username, password string) string {
	resp, err := suite.request.Post("/auth/login", playwright.APIRequestContextPostOptions{
		Data: map[string]string{"username": username, "password": password},
	})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), http.StatusOK, resp.Status(), "login should succeed")

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(suite.T(), resp.JSON(&body))
	require.NotEmpty(suite.T(), body.Token)
	return body.Token
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func (suite *E2ETestSuite) listExpenses(token string) []expense {
	resp, err := suite.request.Get("/expenses", playwright.APIRequestContextGetOptions{Headers: bearer(token)})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), http.StatusOK, resp.Status())

	var list []expense
	require.NoError(suite.T(), resp.JSON(&list))
	return list
}

func (suite *E2ETestSuite) TestAdminCanLogin() {
	suite.login("testuser", "testpass123")
}

func (suite *E2ETestSuite) TestExpenseLifecycle() {
	resp, err := suite.request.Post("/auth/register", playwright.APIRequestContextPostOptions{
		Data: map[string]string{"username": "alice", "password": "pw123"},
	})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), http.StatusOK, resp.Status())

	token := suite.login("alice", "pw123")
	before := len(suite.listExpenses(token))

	// Create
	resp, err = suite.request.Post("/expenses", playwright.APIRequestContextPostOptions{
		Headers: bearer(token),
		Data:    map[string]any{"category": "Rent", "amount": 1200, "date": "2024-02-01"},
	})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), http.StatusOK, resp.Status())

	var created expense
	require.NoError(suite.T(), resp.JSON(&created))
	assert.NotZero(suite.T(), created.ID)

	list := suite.listExpenses(token)
	require.Len(suite.T(), list, before+1)
	assert.Contains(suite.T(), list, created)

	// Update
	resp, err = suite.request.Put(fmt.Sprintf("/expenses/%d", created.ID), playwright.APIRequestContextPutOptions{
		Headers: bearer(token),
		Data:    map[string]any{"category": "Rent", "amount": 1250, "date": "2024-02-01", "description": "February"},
	})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), http.StatusOK, resp.Status())

	var updated expense
	require.NoError(suite.T(), resp.JSON(&updated))
	assert.Equal(suite.T(), 1250.0, updated.Amount)
	require.NotNil(suite.T(), updated.Description)
	assert.Equal(suite.T(), "February", *updated.Description)

	// Delete
	resp, err = suite.request.Delete(fmt.Sprintf("/expenses/%d", created.ID), playwright.APIRequestContextDeleteOptions{
		Headers: bearer(token),
	})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), http.StatusOK, resp.Status())

	assert.Len(suite.T(), suite.listExpenses(token), before)

	resp, err = suite.request.Delete(fmt.Sprintf("/expenses/%d", created.ID), playwright.APIRequestContextDeleteOptions{
		Headers: bearer(token),
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNotFound, resp.Status())
}

func (suite *E2ETestSuite) TestAccessGuard() {
	resp, err := suite.request.Get("/expenses")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusUnauthorized, resp.Status())

	resp, err = suite.request.Get("/expenses", playwright.APIRequestContextGetOptions{Headers: bearer("not.a.token")})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusForbidden, resp.Status())
}

func (suite *E2ETestSuite) TestInvalidLogin() {
	resp, err := suite.request.Post("/auth/login", playwright.APIRequestContextPostOptions{
		Data: map[string]string{"username": "testuser", "password": "wrongpassword"},
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, resp.Status())

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(suite.T(), resp.JSON(&body))
	assert.Equal(suite.T(), "Invalid credentials", body.Error)
}

func (suite *E2ETestSuite) TestMetricsExposed() {
	resp, err := suite.request.Get("/metrics")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), http.StatusOK, resp.Status())

	text, err := resp.Text()
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), text, "expense_api_http_requests_total")
}

func TestE2E(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
