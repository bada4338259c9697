package lint

import "github.com/go-viper/mapstructure/v2"

// GetIntOption extracts an int option. Values decoded from JSON (float64)
// or environment variables (string) are converted.
func GetIntOption(opts map[string]any, key string, defaultVal int) int {
	v, ok := opts[key]
	if !ok {
		return defaultVal
	}
	var n int
	if err := mapstructure.WeakDecode(v, &n); err != nil {
		return defaultVal
	}
	return n
}

// GetStringOption extracts a string option.
func GetStringOption(opts map[string]any, key string, defaultVal string) string {
	v, ok := opts[key]
	if !ok {
		return defaultVal
	}
	s, ok := v.(string)
	if !ok {
		return defaultVal
	}
	return s
}

// DecodeOptions decodes opts onto out, a pointer to a struct tagged with
// `mapstructure` keys. Fields absent from opts keep their current values.
func DecodeOptions(opts map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(opts)
}
