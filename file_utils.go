package saltbox

import "os"

// FileExists reports whether a path exists. Used by the golden-vector and
// fuzz-corpus helpers below, not by the core encode/decode path.
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// writeCorpus saves data as a named golden ciphertext or fuzz seed. It
// refuses to silently overwrite an existing file.
func writeCorpus(filename string, data []byte) error {
	if FileExists(filename) {
		return os.ErrExist
	}
	return os.WriteFile(filename, data, 0o400)
}

// readCorpus loads a previously written golden ciphertext or fuzz seed.
func readCorpus(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

// deleteCorpus removes a golden ciphertext or fuzz seed, if present.
func deleteCorpus(filename string) error {
	if FileExists(filename) {
		return os.Remove(filename)
	}
	return nil
}
