package integration_test

import (
	"net/http"
	"testing"

	"alerthub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDirectoryAPI(t *testing.T) {
	ts := helpers.NewTestServer(t)
	eng := helpers.CreateTestTeam(t, ts.DB, "Engineering")

	var userID string

	t.Run("POST /users", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, "/users", map[string]interface{}{
			"name":    "John Doe",
			"email":   "john@company.com",
			"team_id": eng.ID,
		})
		require.Equal(t, http.StatusCreated, res.StatusCode, "Body: "+body)

		var created struct {
			ID       string  `json:"id"`
			TeamName *string `json:"team_name"`
		}
		helpers.DecodeJSON(t, body, &created)
		require.NotEmpty(t, created.ID)
		require.NotNil(t, created.TeamName)
		assert.Equal(t, "Engineering", *created.TeamName)
		userID = created.ID
	})

	t.Run("POST /users with duplicate email is 409", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, "/users", map[string]interface{}{
			"name":  "Copycat",
			"email": "john@company.com",
		})
		assert.Equal(t, http.StatusConflict, res.StatusCode, "Body: "+body)
	})

	t.Run("POST /users with invalid email is 400", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, "/users", map[string]interface{}{
			"name":  "Broken",
			"email": "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "Body: "+body)
		assert.Contains(t, body, "email")
	})

	t.Run("GET /users", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/users", nil)
		require.Equal(t, http.StatusOK, res.StatusCode, "Body: "+body)
		assert.Contains(t, body, "john@company.com")
	})

	t.Run("PUT /users/:userId", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPut, "/users/"+userID, map[string]interface{}{
			"name": "John D.",
		})
		require.Equal(t, http.StatusOK, res.StatusCode, "Body: "+body)
		assert.Contains(t, body, "John D.")
	})

	t.Run("DELETE /users/:userId", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodDelete, "/users/"+userID, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		res, _ = ts.SendRequest(t, http.MethodGet, "/users/"+userID, nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func TestTeamDirectoryAPI(t *testing.T) {
	ts := helpers.NewTestServer(t)

	var teamID string

	t.Run("POST /teams", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, "/teams", map[string]interface{}{
			"name": "Engineering",
		})
		require.Equal(t, http.StatusCreated, res.StatusCode, "Body: "+body)

		var created struct {
			ID string `json:"id"`
		}
		helpers.DecodeJSON(t, body, &created)
		require.NotEmpty(t, created.ID)
		teamID = created.ID
	})

	t.Run("POST /teams with duplicate name is 409", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, "/teams", map[string]interface{}{
			"name": "Engineering",
		})
		assert.Equal(t, http.StatusConflict, res.StatusCode, "Body: "+body)
	})

	t.Run("PUT /teams/:teamId", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPut, "/teams/"+teamID, map[string]interface{}{
			"name": "Platform",
		})
		require.Equal(t, http.StatusOK, res.StatusCode, "Body: "+body)
		assert.Contains(t, body, "Platform")
	})

	t.Run("DELETE /teams/:teamId detaches members", func(t *testing.T) {
		user := helpers.CreateTestUser(t, ts.DB, "John Doe", "john@company.com", &teamID)

		res, _ := ts.SendRequest(t, http.MethodDelete, "/teams/"+teamID, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		res, body := ts.SendRequest(t, http.MethodGet, "/users/"+user.ID, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, "Body: "+body)

		var fetched struct {
			TeamID *string `json:"team_id"`
		}
		helpers.DecodeJSON(t, body, &fetched)
		assert.Nil(t, fetched.TeamID)
	})
}
