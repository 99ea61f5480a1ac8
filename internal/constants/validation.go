package constants

// MaxCollectionCreateRequest caps the size of a bulk create body.
const MaxCollectionCreateRequest = 100
