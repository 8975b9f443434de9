package writer

import (
	"github.com/achilleasa/spherebvh/bvh"
	"github.com/achilleasa/spherebvh/scene"
)

// Write compiled scene to a zip archive.
func WriteScene(sc *scene.Scene, filename string) error {
	return newZipSceneWriter(filename).Write(sc)
}

// Write a primitive list to a yaml file.
func WritePrimitives(prims []bvh.Primitive, filename string) error {
	return newYamlWriter(filename).Write(prims)
}
