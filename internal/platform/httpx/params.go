package httpx

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/profitpulse/profitpulse/internal/shared"
)

// DaysParam reads the ?days query parameter, falling back to def when
// absent. Values outside 1..365 are rejected.
func DaysParam(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return def, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > 365 {
		return 0, fmt.Errorf("%w: days must be between 1 and 365", shared.ErrValidation)
	}
	return days, nil
}
