package api

import (
	"log/slog"
	"net/http"

	"lastbite/internal/domain/listing"
	"lastbite/internal/handler/httperr"
	"lastbite/internal/pkg/errs"
	"lastbite/internal/usecase/commands"
	"lastbite/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const maxStackLines = 12

var errUnauthorized = errs.New("unauthorized")

type errorMapping struct {
	target error
	status int
	msg    string
}

// Order matters: the first matching sentinel wins.
var listingErrorMappings = []errorMapping{
	{listing.ErrInvalidWindow, http.StatusUnprocessableEntity, "Invalid availability window"},
	{listing.ErrInvalidQuantity, http.StatusUnprocessableEntity, "Invalid quantity"},
	{listing.ErrInvalidDiscount, http.StatusUnprocessableEntity, "Invalid discount"},
	{commands.ErrInvalidListing, http.StatusBadRequest, "Invalid listing"},
	{commands.ErrInvalidClaim, http.StatusUnprocessableEntity, "Invalid quantity"},
	{commands.ErrListingNotFound, http.StatusNotFound, "Listing not found"},
	{queries.ErrListingNotFound, http.StatusNotFound, "Listing not found"},
	{queries.ErrInvalidQuery, http.StatusBadRequest, "Invalid search query"},
	{commands.ErrClaimAborted, http.StatusServiceUnavailable, "Claim aborted"},
	{errs.ErrJournalWriteFailed, http.StatusServiceUnavailable, "Storage unavailable"},
	{errs.ErrArchiveFailed, http.StatusServiceUnavailable, "Archive unavailable"},
}

func abortWithMappedError(c *gin.Context, err error) {
	for _, m := range listingErrorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.msg, nil)
			return
		}
	}
	slog.Error("unmapped listing error",
		slog.String("path", c.FullPath()),
		slog.Any("stack", errs.ExtractStackLines(err, maxStackLines)))
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
}
