package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

const manifestFile = "wyzer.yaml"

type wyzerModule struct {
	Package string `yaml:"Package"`
	Entry   string `yaml:"Entry"`
}

func readManifest(dir string) (wyzerModule, error) {
	data, err := ioutil.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return wyzerModule{}, fmt.Errorf("error reading %s: %w", manifestFile, err)
	}

	var doc wyzerModule
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return wyzerModule{}, fmt.Errorf("error reading %s: %w", manifestFile, err)
	}
	if doc.Entry == "" {
		doc.Entry = "main.src"
	}
	doc.Entry = filepath.Join(dir, doc.Entry)

	return doc, nil
}

const starterProgram = `fnc main() {
    logln("Hello from %s");
}
`

// initModule writes a manifest and, unless one exists, a starter entry file.
func initModule(dir, name string) error {
	doc := wyzerModule{
		Package: name,
		Entry:   "main.src",
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", manifestFile, err)
	}
	if err := ioutil.WriteFile(filepath.Join(dir, manifestFile), out, 0644); err != nil {
		return fmt.Errorf("error creating %s: %w", manifestFile, err)
	}

	entry := filepath.Join(dir, doc.Entry)
	if _, err := os.Stat(entry); os.IsNotExist(err) {
		return ioutil.WriteFile(entry, []byte(fmt.Sprintf(starterProgram, name)), 0644)
	}

	return nil
}
