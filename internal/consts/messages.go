package consts

// 对外返回的固定提示语
const (
	MsgOwnerRefInvalid     = "Provide either customerId or leadId, but not both."
	MsgImagesRequired      = "At least one image is required."
	MsgNoValidImages       = "No valid images to upload."
	MsgImageDeleted        = "Image deleted successfully."
	MsgImageDeleteNotFound = "Image not found or you don't have permission to delete it."
	MsgMainImageSet        = "Main image set successfully."
	MsgMainImageNotFound   = "Image not found or does not belong to the specified owner."
	MsgUploadFailed        = "An error occurred while uploading images."
	MsgDeleteFailed        = "An error occurred while deleting the image."
	MsgSetMainFailed       = "An error occurred while setting the main image."
	MsgListImagesFailed    = "An error occurred while retrieving images."
	MsgListOwnersFailed    = "An error occurred while retrieving owners."
)

// 单张图片校验失败原因，返回时以 "Image <k>: " 为前缀
const (
	MsgBase64Required       = "Base64 data is required."
	MsgInvalidBase64        = "Invalid Base64 format."
	MsgImageTooLarge        = "File size exceeds maximum allowed size of 5MB."
	MsgUnsupportedImageType = "Unsupported content type"
	MsgFileNameTooLong      = "File name must not exceed 255 characters."
	MsgDescriptionTooLong   = "Description must not exceed 500 characters."
)

// HTTP 层
const (
	MsgInvalidRequestBody = "Invalid request body."
	MsgInvalidQuery       = "Invalid query parameters."
	MsgInvalidImageID     = "Invalid image id."
	MsgInvalidOwnerID     = "Invalid owner id."
	MsgRequestTooLarge    = "Request body too large."
	MsgTooManyRequests    = "Too many requests, please try again later."
	MsgRouteNotFound      = "Route not found."
	MsgInternalError      = "Internal server error."
)
