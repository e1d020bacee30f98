package codec

// defaultRegistry is created at package initialization with the built-ins.
// It lives for the whole process and needs no teardown.
var defaultRegistry = MustNew()

// Default returns the process-wide registry used by the package-level functions.
func Default() *Registry {
	return defaultRegistry
}

// Encode encodes data with the named codec from the default registry.
func Encode(data []byte, name, charset string) ([]byte, error) {
	return defaultRegistry.Encode(data, name, charset)
}

// Decode decodes data with the named codec from the default registry.
func Decode(data []byte, name, charset string) ([]byte, error) {
	return defaultRegistry.Decode(data, name, charset)
}

// EncodeString encodes s with the named codec from the default registry.
func EncodeString(s, name, charset string) (string, error) {
	return defaultRegistry.EncodeString(s, name, charset)
}

// DecodeString decodes s with the named codec from the default registry.
func DecodeString(s, name, charset string) (string, error) {
	return defaultRegistry.DecodeString(s, name, charset)
}

// Register adds a codec to the default registry.
func Register(name string, encode, decode Func) error {
	return defaultRegistry.Register(name, encode, decode)
}

// RegisterCodec adds c to the default registry.
func RegisterCodec(name string, c Codec) error {
	return defaultRegistry.RegisterCodec(name, c)
}

// Get retrieves a codec from the default registry.
func Get(name string) (Codec, bool) {
	return defaultRegistry.Get(name)
}

// Names returns the codec names in the default registry.
func Names() []string {
	return defaultRegistry.Names()
}
