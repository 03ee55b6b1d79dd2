package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status: "error",
		Error:  "authentication_failed",
	}

	ErrProductNotFound = ErrorResponse{
		Status:  "error",
		Error:   "product_not_found",
		Details: "Product with this id does not exist",
	}

	ErrAuthenticationRequired = ErrorResponse{
		Status:  "error",
		Error:   "authentication_required",
		Details: "Log in as admin to perform this action",
	}
)
