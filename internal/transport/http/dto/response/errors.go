package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrGalleryNotFound = ErrorResponse{
		Status:  "error",
		Error:   "gallery_not_found",
		Details: "Gallery does not exist",
	}

	ErrPhotoNotFound = ErrorResponse{
		Status:  "error",
		Error:   "photo_not_found",
		Details: "Photo does not exist",
	}

	ErrDraftNotOpen = ErrorResponse{
		Status:  "error",
		Error:   "draft_not_open",
		Details: "Open the gallery draft before editing it",
	}

	ErrUnauthorized = ErrorResponse{
		Status:  "error",
		Error:   "unauthorized",
		Details: "A valid access token is required for this gallery",
	}

	ErrSaveConflict = ErrorResponse{
		Status:  "error",
		Error:   "save_in_flight",
		Details: "Another save is already in progress",
	}
)
