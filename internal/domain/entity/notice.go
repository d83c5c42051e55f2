package entity

// Notice is one traditional knowledge label returned by the hub for a project.
type Notice struct {
	DefaultText string `json:"default_text"`
	ImgURL      string `json:"img_url"`
}

// RenderDescriptor is one renderable fragment of the block output.
type RenderDescriptor struct {
	Markup string `json:"markup"`
}
