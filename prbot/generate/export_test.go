package generate

var (
	Instructions = instructions
	RenderFiles  = renderFiles
)
