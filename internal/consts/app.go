package consts

const (
	// ApplicationName 应用名称
	ApplicationName = "Image Management Server"

	// ApplicationVersion 后端版本
	ApplicationVersion = "v1.0.0"
)
