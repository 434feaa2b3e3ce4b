package cli

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/cloudvault/cloudvault-cli/internal/config"
)

// runCommand executes the CLI against the given backend with a stored
// session, the way a logged-in user would.
func runCommand(t *testing.T, backend string, args ...string) error {
	t.Helper()
	root := NewRootCmd()
	AddCommands(root)
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.SetArgs(append(args, "--api-url", backend))
	return root.Execute()
}

func loginForTest(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := config.SaveSession(&config.Session{Token: "tok", DisplayName: "Ana"}); err != nil {
		t.Fatal(err)
	}
}

func TestValidateUploadSize(t *testing.T) {
	dir := t.TempDir()

	small := filepath.Join(dir, "small.bin")
	if err := os.WriteFile(small, []byte("data"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := validateUploadSize(small, 50); err != nil {
		t.Errorf("small file rejected: %v", err)
	}

	big := filepath.Join(dir, "big.bin")
	f, err := os.Create(big)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Truncate(60 << 20); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if err := validateUploadSize(big, 50); err == nil {
		t.Error("a 60 MB file must fail the 50 MB advisory cap")
	}

	if err := validateUploadSize(filepath.Join(dir, "missing.bin"), 50); err == nil {
		t.Error("a missing file must be rejected")
	}
	if err := validateUploadSize(dir, 50); err == nil {
		t.Error("a directory must be rejected")
	}
}

// TestUploadOversizedFileNeverReachesNetwork pins the advisory cap: the
// rejection happens before any request is made, whatever the backend state.
func TestUploadOversizedFileNeverReachesNetwork(t *testing.T) {
	loginForTest(t)

	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	big := filepath.Join(t.TempDir(), "big.bin")
	f, err := os.Create(big)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Truncate(60 << 20); err != nil {
		t.Fatal(err)
	}
	f.Close()

	err = runCommand(t, srv.URL, "files", "upload", big)
	if err == nil || !strings.Contains(err.Error(), "too large") {
		t.Fatalf("error = %v, want the size rejection", err)
	}
	if got := atomic.LoadInt32(&requests); got != 0 {
		t.Errorf("backend saw %d requests, want 0", got)
	}
}

// TestListUnauthorizedClearsSession pins the logout effect of a rejected
// token: the stored session is gone and nothing is rendered.
func TestListUnauthorizedClearsSession(t *testing.T) {
	loginForTest(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := runCommand(t, srv.URL, "files", "list")
	if err == nil || !strings.Contains(err.Error(), "session expired") {
		t.Fatalf("error = %v, want session-expired", err)
	}
	if _, err := config.LoadSession(); !errors.Is(err, config.ErrNotLoggedIn) {
		t.Error("a 401 on the listing must clear the stored session")
	}
}

func TestListRequiresLogin(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer srv.Close()

	err := runCommand(t, srv.URL, "files", "list")
	if !errors.Is(err, config.ErrNotLoggedIn) {
		t.Fatalf("error = %v, want ErrNotLoggedIn", err)
	}
	if atomic.LoadInt32(&requests) != 0 {
		t.Error("the session guard must abort before any network call")
	}
}

// TestDeleteFailureIssuesNoRefresh pins the delete contract: a failed
// delete shows one generic notification and triggers no listing refetch.
func TestDeleteFailureIssuesNoRefresh(t *testing.T) {
	loginForTest(t)

	var deletes, lists int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "DELETE":
			atomic.AddInt32(&deletes, 1)
			w.WriteHeader(http.StatusInternalServerError)
		default:
			atomic.AddInt32(&lists, 1)
			w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	err := runCommand(t, srv.URL, "files", "delete", "a.pdf", "--yes")
	if err == nil || err.Error() != "delete failed" {
		t.Fatalf("error = %v, want the generic delete failure", err)
	}
	if atomic.LoadInt32(&deletes) != 1 {
		t.Errorf("deletes = %d, want 1", deletes)
	}
	if atomic.LoadInt32(&lists) != 0 {
		t.Errorf("refresh requests = %d, want 0 after a failed delete", lists)
	}
}

func TestDeleteSuccessRefreshesListing(t *testing.T) {
	loginForTest(t)

	var deletes, lists int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "DELETE":
			atomic.AddInt32(&deletes, 1)
			w.WriteHeader(http.StatusNoContent)
		default:
			atomic.AddInt32(&lists, 1)
			w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	if err := runCommand(t, srv.URL, "files", "delete", "a.pdf", "--yes"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if atomic.LoadInt32(&deletes) != 1 || atomic.LoadInt32(&lists) != 1 {
		t.Errorf("deletes = %d, lists = %d, want one of each", deletes, lists)
	}
}

func TestListRejectsUnknownSortKey(t *testing.T) {
	loginForTest(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	err := runCommand(t, srv.URL, "files", "list", "--sort", "color")
	if err == nil || !strings.Contains(err.Error(), "--sort") {
		t.Errorf("error = %v, want the sort validation message", err)
	}
}
