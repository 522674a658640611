package models_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dalemusser/authpages/internal/domain/models"
)

func TestMessagesPerField_ExistsError(t *testing.T) {
	m := models.MessagesPerField{"password": "Invalid password."}

	if !m.ExistsError("username", "password") {
		t.Error("expected error for username or password")
	}
	if m.ExistsError("username") {
		t.Error("expected no error for username alone")
	}
	if (models.MessagesPerField(nil)).ExistsError("username", "password") {
		t.Error("nil index must report no errors")
	}
}

func TestMessagesPerField_GetFirstErrorOrder(t *testing.T) {
	m := models.MessagesPerField{
		"username": "Unknown user.",
		"password": "Invalid password.",
	}

	if got := m.GetFirstError("username", "password"); got != "Unknown user." {
		t.Errorf("GetFirstError(username, password) = %q", got)
	}
	if got := m.GetFirstError("password", "username"); got != "Invalid password." {
		t.Errorf("GetFirstError(password, username) = %q", got)
	}
	if got := m.GetFirstError("email"); got != "" {
		t.Errorf("GetFirstError(email) = %q, want empty", got)
	}
}

func TestMessagesPerField_PrintIfExists(t *testing.T) {
	m := models.MessagesPerField{"username": "x"}
	if got := m.PrintIfExists("username", "has-error"); got != "has-error" {
		t.Errorf("got %q", got)
	}
	if got := m.PrintIfExists("password", "has-error"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestKcContext_ShowsAttemptedUsername(t *testing.T) {
	tests := []struct {
		name string
		auth *models.Auth
		want bool
	}{
		{"no auth", nil, false},
		{"show username", &models.Auth{ShowUsername: true}, true},
		{"reset credentials", &models.Auth{ShowUsername: true, ShowResetCredentials: true}, false},
		{"hidden", &models.Auth{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kc := models.KcContext{Auth: tt.auth}
			if got := kc.ShowsAttemptedUsername(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKcContext_DecodeJSON(t *testing.T) {
	raw := `{
		"pageId": "login.ftl",
		"realm": {"displayName": "Acme", "password": true, "rememberMe": true},
		"url": {"loginAction": "https://id.example.com/login-actions/authenticate?code=1"},
		"login": {"username": "alice"},
		"message": {"type": "error", "summary": "Invalid username or password."},
		"messagesPerField": {"username": "Invalid username or password."},
		"social": {"providers": [{"alias": "github", "displayName": "GitHub", "loginUrl": "https://id.example.com/broker/github"}]}
	}`

	var kc models.KcContext
	if err := json.Unmarshal([]byte(raw), &kc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := kc.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if kc.PageID != models.PageLogin {
		t.Errorf("PageID = %q", kc.PageID)
	}
	if kc.Auth != nil {
		t.Error("absent auth must decode as nil")
	}
	if kc.Message == nil || kc.Message.Type != models.MessageError {
		t.Errorf("Message = %+v", kc.Message)
	}
	if len(kc.SocialProviders()) != 1 {
		t.Errorf("providers = %d", len(kc.SocialProviders()))
	}
	if !kc.MessagesPerField.ExistsError("username", "password") {
		t.Error("expected field error")
	}
}

func TestKcContext_Validate(t *testing.T) {
	valid := func() models.KcContext {
		return models.KcContext{
			PageID: models.PageLogin,
			URL:    models.URLs{LoginAction: "https://id.example.com/login-actions/authenticate"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*models.KcContext)
		ok     bool
	}{
		{"valid", func(*models.KcContext) {}, true},
		{"relative action path", func(c *models.KcContext) { c.URL.LoginAction = "/realms/acme/login-actions/authenticate" }, true},
		{"missing page id", func(c *models.KcContext) { c.PageID = " " }, false},
		{"missing action", func(c *models.KcContext) { c.URL.LoginAction = "" }, false},
		{"javascript action", func(c *models.KcContext) { c.URL.LoginAction = "javascript:alert(1)" }, false},
		{"protocol relative", func(c *models.KcContext) { c.URL.LoginAction = "//evil.example.com/x" }, false},
		{"bad registration url", func(c *models.KcContext) { c.URL.RegistrationURL = "ftp://x" }, false},
		{"unknown message type", func(c *models.KcContext) {
			c.Message = &models.Message{Type: "fatal", Summary: "x"}
		}, false},
		{"provider without alias", func(c *models.KcContext) {
			c.Social = &models.Social{Providers: []models.Provider{{LoginURL: "https://x.example.com"}}}
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kc := valid()
			tt.mutate(&kc)
			err := kc.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, models.ErrInvalidContext) {
					t.Errorf("error %v does not wrap ErrInvalidContext", err)
				}
			}
		})
	}
}
