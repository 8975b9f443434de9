package writer

import (
	"os"

	"github.com/achilleasa/spherebvh/bvh"
	"github.com/achilleasa/spherebvh/log"
	"github.com/achilleasa/spherebvh/scene"
	"gopkg.in/yaml.v3"
)

type yamlWriter struct {
	logger   log.Logger
	filename string
}

func newYamlWriter(filename string) *yamlWriter {
	return &yamlWriter{
		logger:   log.New("yaml writer"),
		filename: filename,
	}
}

// Write primitive list document.
func (w *yamlWriter) Write(prims []bvh.Primitive) (err error) {
	w.logger.Noticef("writing %d primitives to %s", len(prims), w.filename)

	f, err := os.Create(w.filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err = encoder.Encode(scene.NewDocument(prims)); err != nil {
		return err
	}
	return encoder.Close()
}
