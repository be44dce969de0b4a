/*
Package contracts provides access to compiled Account Bindings contract
artifacts.

Compiled contract is expected to be stored in a directory as a pair of
contract.nef and manifest.json files, the way neo-go compiler produces them
with --out and --manifest flags.
*/
package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
)

const (
	// BindingsDir is a default directory of the compiled contract relative
	// to the artifacts root.
	BindingsDir = "bindings"

	nefName      = "contract.nef"
	manifestName = "manifest.json"
)

// Contract groups information about compiled Neo contract.
type Contract struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

var (
	errInvalidNEF      = errors.New("invalid NEF")
	errInvalidManifest = errors.New("invalid manifest")
)

// ReadDir reads compiled contract from the directory of the local file system.
func ReadDir(dir string) (Contract, error) {
	return Read(os.DirFS(dir), ".")
}

// Read reads compiled contract from the dir of the given fs.FS.
func Read(_fs fs.FS, dir string) (Contract, error) {
	c, err := readContractFromDir(_fs, dir)
	if err != nil {
		return c, fmt.Errorf("read contract %s: %w", dir, err)
	}

	return c, nil
}

func readContractFromDir(_fs fs.FS, dir string) (Contract, error) {
	var c Contract

	// fs.FS always uses "/", so filepath.Join() is not applicable.
	fNEF, err := _fs.Open(dir + "/" + nefName)
	if err != nil {
		return c, fmt.Errorf("open NEF: %w", err)
	}
	defer fNEF.Close()

	fManifest, err := _fs.Open(dir + "/" + manifestName)
	if err != nil {
		return c, fmt.Errorf("open manifest: %w", err)
	}
	defer fManifest.Close()

	bReader := io.NewBinReaderFromIO(fNEF)
	c.NEF.DecodeBinary(bReader)
	if bReader.Err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidNEF, bReader.Err)
	}

	err = json.NewDecoder(fManifest).Decode(&c.Manifest)
	if err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidManifest, err)
	}

	return c, nil
}
