// internal/application/query/mall/errors.go
package mall

import (
	"fmt"

	"github.com/UDAY2232/LackLink/internal/domain/common"
)

// ErrNotFound is returned for inactive or unknown storefront entries.
var ErrNotFound = fmt.Errorf("mall: %w", common.ErrNotFound)
