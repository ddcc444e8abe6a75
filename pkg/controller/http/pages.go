package http

import (
	"net/http"

	"github.com/m-mizutani/ctxlog"
)

func writePage(w http.ResponseWriter, r *http.Request, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(page)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write page", "error", err)
	}
}

// handleHome serves the landing page
func handleHome(w http.ResponseWriter, r *http.Request) {
	writePage(w, r, `<!DOCTYPE html>
<html>
<head>
    <title>Flamingo</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #6ECADC;
            color: white;
        }
        .container {
            text-align: center;
            padding: 2rem;
            background: rgba(255, 255, 255, 0.15);
            border-radius: 10px;
        }
        h1 { margin: 0 0 1rem 0; font-size: 3rem; }
        p { margin: 0.5rem 0; font-size: 1.2rem; }
    </style>
</head>
<body>
    <div class="container">
        <h1>🦩 Flamingo</h1>
        <p>Social invites for Slack</p>
        <p>Type <code>/flamingo happy hour friday 5pm</code> in any channel to get started.</p>
    </div>
</body>
</html>`)
}

// handleSuccess serves the post-install page
func handleSuccess(w http.ResponseWriter, r *http.Request) {
	writePage(w, r, `<!DOCTYPE html>
<html>
<head><title>Flamingo</title></head>
<body>
    <h2>🦩 Flamingo is in!</h2>
    <p>The app was installed to your workspace. Try <code>/flamingo happy hour friday 5pm</code>.</p>
</body>
</html>`)
}

// handleError serves the failed-install page
func handleError(w http.ResponseWriter, r *http.Request) {
	writePage(w, r, `<!DOCTYPE html>
<html>
<head><title>Flamingo</title></head>
<body>
    <h2>Something went wrong</h2>
    <p>The installation could not be completed. Please try again.</p>
</body>
</html>`)
}
