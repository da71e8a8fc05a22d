package espack

import (
	"os"
	"io/ioutil"
	"github.com/spf13/afero"
)

type fileLoader struct {
	fs afero.Fs
}

// NewFileLoader returns a ResourceLoader reading module source from the
// given filesystem.
func NewFileLoader(fs afero.Fs) ResourceLoader {
	return &fileLoader{fs: fs}
}

func (fl *fileLoader) LoadResource(location string) (string, error) {
	file, err := fl.fs.OpenFile(location, os.O_RDONLY, os.ModePerm)
	if err != nil {
		return "", err
	}
	defer file.Close()
	content, err := ioutil.ReadAll(file)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
