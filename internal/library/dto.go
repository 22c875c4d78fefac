package library

type FolderInput struct {
	Name      string `json:"name" validate:"required,max=200"`
	CompanyID *uint  `json:"companyId"`
}

type RenameFolderInput struct {
	Name string `json:"name" validate:"required,max=200"`
}

// FileFilter narrows the file list. A nil FolderID lists every file.
type FileFilter struct {
	FolderID *uint
}
