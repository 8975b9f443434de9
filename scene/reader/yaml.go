package reader

import (
	"fmt"
	"time"

	"github.com/achilleasa/spherebvh/asset"
	"github.com/achilleasa/spherebvh/bvh"
	"github.com/achilleasa/spherebvh/log"
	"github.com/achilleasa/spherebvh/scene"
	"gopkg.in/yaml.v3"
)

type yamlReader struct {
	logger log.Logger
}

func newYamlReader() *yamlReader {
	return &yamlReader{
		logger: log.New("yaml reader"),
	}
}

// Parse a primitive list document.
func (r *yamlReader) Read(res *asset.Resource) ([]bvh.Primitive, error) {
	r.logger.Noticef(`parsing primitives from "%s"`, res.Path())
	start := time.Now()

	decoder := yaml.NewDecoder(res)
	decoder.KnownFields(true)

	var doc scene.Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("yamlReader: failed to parse %s: %w", res.Name(), err)
	}

	prims, err := doc.PrimitiveList()
	if err != nil {
		return nil, fmt.Errorf("yamlReader: %s: %w", res.Name(), err)
	}

	r.logger.Infof("parsed %d primitives in %d ms", len(prims), time.Since(start).Nanoseconds()/1e6)
	return prims, nil
}
