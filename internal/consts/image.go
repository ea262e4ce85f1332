package consts

const (
	// MaxImagesPerOwner 每个客户/线索最多可关联的图片数量
	MaxImagesPerOwner = 10

	// MaxImageSizeBytes 单张图片解码后的最大字节数 (5MB)
	MaxImageSizeBytes = 5 * 1024 * 1024
)

// AllowedImageContentTypes 允许入库的图片类型前缀
var AllowedImageContentTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

const (
	MaxFileNameLength    = 255
	MaxDescriptionLength = 500
)
