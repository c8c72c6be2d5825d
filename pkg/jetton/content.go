package jetton

import "github.com/go-faster/jx"

// Content is the jetton's onchain metadata.
type Content struct {
	Name        string
	Description string
	Symbol      string
	Image       string
}

// Bytes encodes the metadata as its canonical JSON blob. The blob is part of
// the master's init data, so two masters with the same admin, wallet code and
// content are the same account.
func (c Content) Bytes() []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("name")
	e.Str(c.Name)
	e.FieldStart("description")
	e.Str(c.Description)
	e.FieldStart("symbol")
	e.Str(c.Symbol)
	e.FieldStart("image")
	e.Str(c.Image)
	e.ObjEnd()
	return e.Bytes()
}
