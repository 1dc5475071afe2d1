package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestPrincipalCanAccessWorker(t *testing.T) {
	admin := Principal{AdminID: "a1", AdminName: "boss"}
	worker := Principal{AdminID: "a1", WorkerID: "1000"}

	cases := []struct {
		name              string
		p                 Principal
		adminID, workerID string
		want              bool
	}{
		{"admin own worker", admin, "a1", "1000", true},
		{"admin other tenant", admin, "a2", "1000", false},
		{"worker self", worker, "a1", "1000", true},
		{"worker someone else", worker, "a1", "1001", false},
		{"anonymous", Principal{}, "", "", false},
	}
	for _, tc := range cases {
		if got := tc.p.CanAccessWorker(tc.adminID, tc.workerID); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
	if !admin.IsAdmin() || worker.IsAdmin() {
		t.Fatalf("IsAdmin misreports")
	}
}

func TestSignInSurvivesRequestBuffers(t *testing.T) {
	sessions := NewSessionStore(SessionOptions{})
	app := fiber.New()
	app.Get("/in/:admin", func(c *fiber.Ctx) error {
		// params alias fasthttp's buffer, which is reused after the handler returns
		return SignIn(c, sessions, Principal{AdminID: c.Params("admin"), AdminName: "boss"})
	})
	app.Get("/who", RequireAdmin(sessions), func(c *fiber.Ctx) error {
		p, err := CurrentPrincipal(c, sessions)
		if err != nil {
			return err
		}
		return c.SendString(p.AdminID + "|" + p.AdminName)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/in/adm1", nil))
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == CookieName {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatalf("no session cookie")
	}

	// another request in between reuses the buffers
	_, _ = app.Test(httptest.NewRequest(http.MethodGet, "/in/zzzz", nil))

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("who: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || string(body) != "adm1|boss" {
		t.Fatalf("status=%d body=%q", resp.StatusCode, body)
	}
}

func TestRequireAdminRejectsWorkerSession(t *testing.T) {
	sessions := NewSessionStore(SessionOptions{})
	app := fiber.New()
	app.Get("/in", func(c *fiber.Ctx) error {
		return SignIn(c, sessions, Principal{AdminID: "a1", WorkerID: "1000"})
	})
	app.Get("/admin", RequireAdmin(sessions), func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/in", nil))
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, ck := range resp.Cookies() {
		req.AddCookie(ck)
	}
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("admin: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound || resp.Header.Get(fiber.HeaderLocation) != "/" {
		t.Fatalf("status=%d location=%q", resp.StatusCode, resp.Header.Get(fiber.HeaderLocation))
	}
}
