package charts

import (
	"net/http"
	"strconv"
)

// FrameHandler serves the current frame of surface, or 503 until one exists.
func FrameHandler(surface *MemorySurface) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		frame, format, ok := surface.Frame()
		if !ok {
			http.Error(w, "chart not rendered yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Length", strconv.Itoa(len(frame)))
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write(frame)
		}
	})
}
