package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"atelier/api/internal/models"
	"atelier/api/internal/service"
)

// An approval can match an account that never submitted an application;
// the payload must then carry no applicationStatus at all, not an empty
// string.
func TestApproveResponseOmitsMissingApplication(t *testing.T) {
	user := models.User{
		ID:           "user_1",
		Email:        "maria@atelier.test",
		Role:         models.UserRoleCreator,
		Approved:     true,
		FirstLogin:   true,
		RegisteredAt: time.Now(),
	}

	resp := approveResponse(service.ApproveResult{User: user, CredentialsIssued: true})

	assert.NotContains(t, resp, "applicationStatus")
	assert.Equal(t, true, resp["credentialsIssued"])
	assert.Equal(t, toUserResponse(user), resp["user"])
}

func TestApproveResponseIncludesApplicationStatus(t *testing.T) {
	user := models.User{ID: "user_1", Email: "maria@atelier.test", Role: models.UserRoleCreator, Approved: true}
	app := models.CreatorApplication{
		ID:     "app_1",
		Email:  "maria@atelier.test",
		Status: models.ApplicationStatusApproved,
	}

	resp := approveResponse(service.ApproveResult{User: user, Application: app, CredentialsIssued: true})

	assert.Equal(t, models.ApplicationStatusApproved, resp["applicationStatus"])
}

func TestRejectResponseOmitsMissingFields(t *testing.T) {
	app := models.CreatorApplication{
		ID:     "app_1",
		Email:  "joao@atelier.test",
		Status: models.ApplicationStatusRejected,
	}

	resp := rejectResponse(service.RejectResult{Application: app})
	assert.Equal(t, models.ApplicationStatusRejected, resp["applicationStatus"])
	assert.NotContains(t, resp, "user")

	user := models.User{ID: "user_2", Email: "ana@atelier.test", Role: models.UserRoleCreator}
	resp = rejectResponse(service.RejectResult{User: &user})
	assert.NotContains(t, resp, "applicationStatus")
	assert.Equal(t, toUserResponse(user), resp["user"])
}
