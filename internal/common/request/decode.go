package request

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Alturino/storefront/internal/common/validate"
)

// DecodeAndValidate reads a JSON body into dst and runs its validate tags.
func DecodeAndValidate(c context.Context, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed decoding request body with error=%w", err)
	}
	if err := validate.Get().StructCtx(c, dst); err != nil {
		return fmt.Errorf("failed validating request body with error=%w", err)
	}
	return nil
}
