package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"wikitok/internal/config"
	"wikitok/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// AuthHandler runs the Google OAuth login flow and the session
// endpoints. The OAuth client is built once from the configuration and
// owned by the handler; tests swap the endpoint URLs for a fake
// provider.
type AuthHandler struct {
	db          *gorm.DB
	cfg         *config.Config
	oauth       *oauth2.Config
	userInfoURL string
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		db:  db,
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.RedirectURL(),
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

// googleUserInfo is the subset of the userinfo response we consume.
type googleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func generateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Login redirects to the provider's consent screen. The state token is
// held in the session for the callback to verify.
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.cfg.OAuthConfigured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google OAuth is not configured"})
		return
	}

	state, err := generateStateToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate state token"})
		return
	}

	session := sessions.Default(c)
	session.Set("oauth_state", state)
	session.Save()

	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline))
}

// Callback completes the login: verifies state, exchanges the code,
// requires an email from the provider, finds or creates the local user
// and establishes the session. Success redirects the browser to the
// frontend; provider failures answer 400 with the error envelope.
func (h *AuthHandler) Callback(c *gin.Context) {
	session := sessions.Default(c)
	savedState := session.Get("oauth_state")
	session.Delete("oauth_state")
	session.Save()

	if savedState == nil || c.Query("state") != savedState.(string) {
		JSONError(c, models.NewAuthProviderError("Invalid OAuth state", http.StatusBadRequest))
		return
	}

	code := c.Query("code")
	if code == "" {
		JSONError(c, models.NewAuthProviderError("Missing authorization code", http.StatusBadRequest))
		return
	}

	token, err := h.oauth.Exchange(c.Request.Context(), code)
	if err != nil {
		JSONError(c, models.NewAuthProviderError("OAuth callback failed: "+err.Error(), http.StatusBadRequest))
		return
	}

	userInfo, err := h.getUserInfo(token.AccessToken)
	if err != nil {
		JSONError(c, models.NewAuthProviderError("Failed to fetch user info", http.StatusBadRequest))
		return
	}

	if userInfo.Email == "" {
		JSONError(c, models.NewAuthProviderError("Email not available from Google", http.StatusBadRequest))
		return
	}

	user, err := h.findOrCreateUser(userInfo.Email, userInfo.Name)
	if err != nil {
		JSONError(c, err)
		return
	}

	session.Set("user_id", user.ID)
	session.Set("user_email", user.Email)
	session.Set("user_name", user.Username)
	session.Save()

	c.Redirect(http.StatusFound, h.cfg.FrontendURL)
}

// Me reports the session user, or {"user": null} with a 401 for
// anonymous callers. Anonymity is not an error here.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout clears all session state unconditionally.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) getUserInfo(accessToken string) (*googleUserInfo, error) {
	resp, err := http.Get(h.userInfoURL + "?access_token=" + accessToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var userInfo googleUserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, err
	}
	return &userInfo, nil
}

// findOrCreateUser resolves an email to a local user, creating one on
// first login. The display name defaults to the local part of the
// email; collisions follow the configured strategy.
func (h *AuthHandler) findOrCreateUser(email, name string) (*models.User, error) {
	var user models.User
	err := h.db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError(err)
	}

	username := name
	if username == "" {
		username = strings.Split(email, "@")[0]
	}

	username, err = h.resolveUsername(username)
	if err != nil {
		return nil, err
	}

	user = models.User{Email: email, Username: username}
	if err := h.db.Create(&user).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (h *AuthHandler) resolveUsername(username string) (string, error) {
	var existing models.User
	err := h.db.Where("username = ?", username).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return username, nil
	}
	if err != nil {
		return "", models.NewInternalError(err)
	}

	if h.cfg.UsernameCollision == config.CollisionReject {
		return "", models.NewValidationError("Display name already taken")
	}

	// Suffix strategy: walk -2, -3, ... until a free name turns up.
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", username, i)
		err := h.db.Where("username = ?", candidate).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", models.NewInternalError(err)
		}
	}
}
