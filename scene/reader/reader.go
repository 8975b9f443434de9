package reader

import (
	"context"
	"fmt"
	"strings"

	"github.com/achilleasa/spherebvh/asset"
	"github.com/achilleasa/spherebvh/bvh"
	"github.com/achilleasa/spherebvh/scene"
)

// Read a list of primitives from a local file or URL.
func ReadPrimitives(ctx context.Context, path string) ([]bvh.Primitive, error) {
	if !hasSuffix(path, ".yaml", ".yml") {
		return nil, fmt.Errorf("readPrimitives: unsupported file format for %q", path)
	}

	res, err := asset.NewResource(ctx, path)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return newYamlReader().Read(res)
}

// Read a compiled scene from a local file or URL.
func ReadScene(ctx context.Context, path string) (*scene.Scene, error) {
	if !hasSuffix(path, ".zip") {
		return nil, fmt.Errorf("readScene: unsupported file format for %q", path)
	}

	res, err := asset.NewResource(ctx, path)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return newZipSceneReader().Read(res)
}

func hasSuffix(path string, suffixes ...string) bool {
	path = strings.ToLower(path)
	for _, suffix := range suffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}
