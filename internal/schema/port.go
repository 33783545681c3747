package schema

type RegistryAPI interface {
	Define(name, createdBy string, adminFields FieldSet) (int64, error)
	Lookup(id int64) (*Schema, error)
	ListActive() ([]Schema, error)
	Deactivate(id int64) (bool, error)
}
