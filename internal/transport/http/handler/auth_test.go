package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/canopy-api/internal/application/auth"
	"github.com/canopy-api/internal/domain"
	"github.com/canopy-api/internal/transport/http/cookies"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) RequestOTP(ctx context.Context, req domain.SendOTPRequest) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

func (m *mockAuthSvc) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*auth.VerifyResult, error) {
	args := m.Called(ctx, req)
	if res, _ := args.Get(0).(*auth.VerifyResult); res != nil {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

var testWriter = cookies.Writer{AccessTTL: time.Hour, RefreshTTL: 7 * 24 * time.Hour}

func postJSON(t *testing.T, h http.HandlerFunc, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	h(rr, r)
	return rr
}

func cookieByName(t *testing.T, rr *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

// --- SendOTP tests ---

func TestSendOTP_InvalidBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthSvc{}, testWriter)
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/send-otp", bytes.NewBufferString("not-json"))
	rr := httptest.NewRecorder()
	h.SendOTP(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"ok":false,"error":"missing_fields"}`, rr.Body.String())
}

func TestSendOTP_MissingFields(t *testing.T) {
	h := NewAuthHandler(&mockAuthSvc{}, testWriter)
	rr := postJSON(t, h.SendOTP, "/v1/auth/send-otp", domain.SendOTPRequest{Email: "a@alpha.edu"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"ok":false,"error":"missing_fields"}`, rr.Body.String())
}

func TestSendOTP_UnknownCollege(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("RequestOTP", mock.Anything, mock.Anything).Return(false, domain.ErrCollegeNotFound)
	h := NewAuthHandler(svc, testWriter)

	rr := postJSON(t, h.SendOTP, "/v1/auth/send-otp", domain.SendOTPRequest{
		CollegeName: "Nowhere U", Name: "Jane", Email: "jane@alpha.edu",
	})

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"ok":false,"error":"college_not_found"}`, rr.Body.String())
}

func TestSendOTP_DomainMismatchCarriesDomain(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("RequestOTP", mock.Anything, mock.Anything).Return(false, domain.NewDomainMismatch("alpha.edu"))
	h := NewAuthHandler(svc, testWriter)

	rr := postJSON(t, h.SendOTP, "/v1/auth/send-otp", domain.SendOTPRequest{
		CollegeName: "Alpha College", Name: "Jane", Email: "jane@gmail.com",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var resp AuthEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.False(t, resp.OK)
	assert.Equal(t, "email_domain_invalid", resp.Error)
	assert.Equal(t, "alpha.edu", resp.Domain)
}

func TestSendOTP_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("RequestOTP", mock.Anything, mock.Anything).Return(false, nil)
	h := NewAuthHandler(svc, testWriter)

	rr := postJSON(t, h.SendOTP, "/v1/auth/send-otp", domain.SendOTPRequest{
		CollegeName: "Alpha College", Name: "Jane", Email: "jane@alpha.edu",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
	svc.AssertExpectations(t)
}

func TestSendOTP_DevFallbackFlagged(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("RequestOTP", mock.Anything, mock.Anything).Return(true, nil)
	h := NewAuthHandler(svc, testWriter)

	rr := postJSON(t, h.SendOTP, "/v1/auth/send-otp", domain.SendOTPRequest{
		CollegeName: "Alpha College", Name: "Jane", Email: "jane@alpha.edu",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true,"dev":true}`, rr.Body.String())
}

// --- VerifyOTP tests ---

func TestVerifyOTP_WrongCode(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyOTP", mock.Anything, mock.Anything).Return(nil, domain.ErrOTPInvalid)
	h := NewAuthHandler(svc, testWriter)

	rr := postJSON(t, h.VerifyOTP, "/v1/auth/verify-otp", domain.VerifyOTPRequest{
		Email: "jane@alpha.edu", OTP: "000000",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"ok":false,"error":"otp_invalid"}`, rr.Body.String())
	assert.Empty(t, rr.Result().Cookies(), "no cookies on failure")
}

func TestVerifyOTP_ExpiredCode(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyOTP", mock.Anything, mock.Anything).Return(nil, domain.ErrOTPExpired)
	h := NewAuthHandler(svc, testWriter)

	rr := postJSON(t, h.VerifyOTP, "/v1/auth/verify-otp", domain.VerifyOTPRequest{
		Email: "jane@alpha.edu", OTP: "123456",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"ok":false,"error":"otp_expired"}`, rr.Body.String())
}

func TestVerifyOTP_HappyPathSetsCookiePair(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyOTP", mock.Anything, domain.VerifyOTPRequest{Email: "jane@alpha.edu", OTP: "123456"}).
		Return(&auth.VerifyResult{
			User:         domain.PublicUser{ID: "u1", Name: "Jane", CollegeName: "Alpha College"},
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
		}, nil)
	h := NewAuthHandler(svc, testWriter)

	rr := postJSON(t, h.VerifyOTP, "/v1/auth/verify-otp", domain.VerifyOTPRequest{
		Email: "jane@alpha.edu", OTP: "123456",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp AuthEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.OK)
	require.NotNil(t, resp.User)
	assert.Equal(t, "u1", resp.User.ID)

	access := cookieByName(t, rr, cookies.AccessName)
	assert.Equal(t, "access-token", access.Value)
	assert.Equal(t, "/", access.Path)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, access.SameSite)
	assert.False(t, access.Secure, "secure only in production")
	assert.Equal(t, 3600, access.MaxAge)

	refresh := cookieByName(t, rr, cookies.RefreshName)
	assert.Equal(t, "refresh-token", refresh.Value)
	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, 7*24*3600, refresh.MaxAge)
	svc.AssertExpectations(t)
}

func TestVerifyOTP_ProductionCookiesAreSecure(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyOTP", mock.Anything, mock.Anything).Return(&auth.VerifyResult{
		User: domain.PublicUser{ID: "u1"}, AccessToken: "a", RefreshToken: "r",
	}, nil)
	h := NewAuthHandler(svc, cookies.Writer{Secure: true, AccessTTL: time.Hour, RefreshTTL: 7 * 24 * time.Hour})

	rr := postJSON(t, h.VerifyOTP, "/v1/auth/verify-otp", domain.VerifyOTPRequest{
		Email: "jane@alpha.edu", OTP: "123456",
	})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, cookieByName(t, rr, cookies.AccessName).Secure)
	assert.True(t, cookieByName(t, rr, cookies.RefreshName).Secure)
}

// --- Logout tests ---

func TestLogout_ClearsAllSessionCookies(t *testing.T) {
	h := NewAuthHandler(&mockAuthSvc{}, testWriter)
	rr := httptest.NewRecorder()
	h.Logout(rr, httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true}`, rr.Body.String())

	cleared := map[string]bool{}
	for _, c := range rr.Result().Cookies() {
		assert.Less(t, c.MaxAge, 0, "cookie %s should expire", c.Name)
		assert.Empty(t, c.Value)
		cleared[c.Name] = true
	}
	assert.True(t, cleared[cookies.AccessName])
	assert.True(t, cleared[cookies.RefreshName])
	assert.True(t, cleared[cookies.LegacyName])
}
