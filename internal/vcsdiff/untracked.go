package vcsdiff

import (
	"bytes"
	"io"
	"os"
)

// sniffEligible stats and reads path to decide whether it qualifies for untracked-file synthesis: at most
// maxUntrackedFileSize bytes and free of NUL bytes (a cheap binary-content heuristic).
func sniffEligible(path string) (size int64, eligible bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false, err
	}
	if info.IsDir() || info.Size() > maxUntrackedFileSize {
		return info.Size(), false, nil
	}

	content, err := readFileLimited(path, maxUntrackedFileSize)
	if err != nil {
		return info.Size(), false, err
	}
	if bytes.IndexByte(content, 0) != -1 {
		return info.Size(), false, nil
	}
	return info.Size(), true, nil
}

func readFileLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, f, limit+1); err != nil && err != io.EOF {
		return nil, err
	}
	return buf.Bytes(), nil
}
