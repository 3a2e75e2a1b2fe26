package scene

import (
	"bytes"

	"github.com/zeusync/scenekit/internal/core/props"
	"github.com/zeusync/scenekit/internal/core/resource"
)

// Prefab is a resource holding the serialized template of a GameObject.
// Objects linked to a prefab inherit its table and persist only their
// differences from it.
type Prefab struct {
	resource.Base
	table *props.Table
}

var _ resource.Resource = (*Prefab)(nil)

// Table returns the baseline table, always in Reading mode.
func (p *Prefab) Table() *props.Table {
	if p.table == nil {
		p.table = props.New(props.Reading)
	}
	return p.table
}

func (p *Prefab) Decode(data []byte) error {
	t, err := props.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}
	t.Remove(keyPrefab)
	t.SetMode(props.Reading)
	p.table = t
	return nil
}

func (p *Prefab) Encode() ([]byte, error) {
	return p.Table().MarshalText()
}

// CloneGameObject replaces the baseline with the state of src.
//
// The old baseline is cleared first so that src, when linked to p, is not
// delta-compressed against it. The capture goes to a separate table and
// the prefab key is stripped, so instances of p never link to p through
// their own data.
func (p *Prefab) CloneGameObject(src *GameObject) {
	p.Table().Clear()
	t := props.New(props.Writing)
	src.Serialize(t)
	t.Remove(keyPrefab)
	t.SetMode(props.Reading)
	p.table = t
}

// Instantiate creates a registered GameObject from p.
func (p *Prefab) Instantiate(ctx *Context) *GameObject {
	return Instantiate(ctx, p)
}
