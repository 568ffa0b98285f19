package saltbox

// Fuzz runs one go-fuzz-style iteration: data is fed straight to Decrypt
// under a fixed recipient key, and a crash or panic is the only thing this
// function watches for. It never asserts anything about the returned error,
// since almost all fuzz input is expected to be rejected.
func Fuzz(data []byte) int {
	sk := deterministicFuzzKey
	pt, err := Decrypt(data, sk)
	if err != nil {
		return 0
	}
	if pt == nil {
		return 0
	}
	return 1
}

var deterministicFuzzKey = [keySize]byte{0xAA}
