package enums

// UploadFolder is the top-level object-store prefix for a stored file.
type UploadFolder string

const (
	UploadFolderGeneral      UploadFolder = "uploads"
	UploadFolderLogos        UploadFolder = "logos"
	UploadFolderIncidents    UploadFolder = "incidents"
	UploadFolderMedicals     UploadFolder = "medicals"
	UploadFolderCertificates UploadFolder = "certificates"
	UploadFolderContractors  UploadFolder = "contractors"
	UploadFolderChemicals    UploadFolder = "chemicals"
	UploadFolderNCR          UploadFolder = "ncr"
	UploadFolderLegal        UploadFolder = "legal"
	UploadFolderLibrary      UploadFolder = "library"
)

var ValidUploadFolders = []UploadFolder{
	UploadFolderGeneral,
	UploadFolderLogos,
	UploadFolderIncidents,
	UploadFolderMedicals,
	UploadFolderCertificates,
	UploadFolderContractors,
	UploadFolderChemicals,
	UploadFolderNCR,
	UploadFolderLegal,
	UploadFolderLibrary,
}

func (f UploadFolder) IsValid() bool { return contains(ValidUploadFolders, f) }

// ParseUploadFolder defaults an empty value to the general folder.
func ParseUploadFolder(value string) (UploadFolder, error) {
	if value == "" {
		return UploadFolderGeneral, nil
	}
	return parse(ValidUploadFolders, value, "upload folder")
}
