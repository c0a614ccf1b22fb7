package assets

// Loader loads a post template by name (without the .tmpl extension).
// Implementations return ErrTemplateNotFound for unknown names and
// ErrInvalidAssetName for names with invalid characters.
type Loader interface {
	LoadTemplate(name string) (string, error)
}
