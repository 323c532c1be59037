package helpers

import (
	"net/http"
	"strconv"
)

// PathID parses the named path value as an int64 ID. On a missing or
// non-numeric value it writes a 400 JSON error and returns false.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
