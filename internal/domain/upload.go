package domain

// AllowedExtensions lists the upload extensions the pipeline accepts.
var AllowedExtensions = map[string]bool{
	"pdf":  true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"tif":  true,
	"tiff": true,
}

// StagedFilePrefix is prepended to an upload's name while it sits in the
// temp directory.
const StagedFilePrefix = "temp_"
