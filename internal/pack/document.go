package pack

import (
	"fmt"
	"sort"
)

// DirEntry lists the immediate children of one directory in the pack's
// denormalized index.
type DirEntry struct {
	Files []string
	Dirs  []string
}

// Document is the decoded form of an archive payload: the full file tree
// plus the per-directory index. The index is trusted as written; it is
// not reconstructed or cross-checked against the tree.
type Document struct {
	Tree     map[string][]byte
	DirIndex map[string]DirEntry
}

// The payload text is a restricted literal notation: mappings, sequences,
// quoted strings and b-prefixed byte-strings, exactly as the packer's
// repr-style serializer emits them. docParser is a recursive-descent
// parser for that grammar and nothing more; archive content is never
// evaluated.
type docParser struct {
	data []byte
	pos  int
}

func parseDocument(data []byte) (*Document, error) {
	p := &docParser{data: data}

	doc, err := p.parseTop()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.pos != len(p.data) {
		return nil, p.errorf("trailing data after document")
	}
	return doc, nil
}

func (p *docParser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s at offset %d", ErrCorruptArchive, msg, p.pos)
}

func (p *docParser) skipSpace() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// expect consumes c or fails.
func (p *docParser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.data) || p.data[p.pos] != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

// peek returns the next non-space byte without consuming it.
func (p *docParser) peek() (byte, error) {
	p.skipSpace()
	if p.pos >= len(p.data) {
		return 0, p.errorf("unexpected end of document")
	}
	return p.data[p.pos], nil
}

func (p *docParser) parseTop() (*Document, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}

	doc := &Document{}
	for {
		c, err := p.peek()
		if err != nil {
			return nil, err
		}
		if c == '}' {
			p.pos++
			break
		}

		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}

		switch key {
		case "tree":
			if doc.Tree != nil {
				return nil, p.errorf("duplicate key %q", key)
			}
			doc.Tree, err = p.parseTree()
		case "dirinfo":
			if doc.DirIndex != nil {
				return nil, p.errorf("duplicate key %q", key)
			}
			doc.DirIndex, err = p.parseDirIndex()
		default:
			return nil, p.errorf("unexpected top-level key %q", key)
		}
		if err != nil {
			return nil, err
		}

		done, err := p.endOfItem('}')
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}

	if doc.Tree == nil || doc.DirIndex == nil {
		return nil, p.errorf("document must contain both tree and dirinfo")
	}
	return doc, nil
}

// endOfItem consumes either a separating comma or the closing delimiter,
// reporting whether the aggregate ended. A trailing comma before the
// delimiter is accepted.
func (p *docParser) endOfItem(closing byte) (bool, error) {
	c, err := p.peek()
	if err != nil {
		return false, err
	}
	switch c {
	case ',':
		p.pos++
		c, err = p.peek()
		if err != nil {
			return false, err
		}
		if c == closing {
			p.pos++
			return true, nil
		}
		return false, nil
	case closing:
		p.pos++
		return true, nil
	default:
		return false, p.errorf("expected %q or %q", ',', closing)
	}
}

func (p *docParser) parseTree() (map[string][]byte, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}

	tree := make(map[string][]byte)
	for {
		c, err := p.peek()
		if err != nil {
			return nil, err
		}
		if c == '}' {
			p.pos++
			return tree, nil
		}

		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		content, err := p.parseBytes()
		if err != nil {
			return nil, err
		}
		tree[key] = content

		done, err := p.endOfItem('}')
		if err != nil {
			return nil, err
		}
		if done {
			return tree, nil
		}
	}
}

func (p *docParser) parseDirIndex() (map[string]DirEntry, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}

	index := make(map[string]DirEntry)
	for {
		c, err := p.peek()
		if err != nil {
			return nil, err
		}
		if c == '}' {
			p.pos++
			return index, nil
		}

		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		entry, err := p.parseDirEntry()
		if err != nil {
			return nil, err
		}
		index[key] = entry

		done, err := p.endOfItem('}')
		if err != nil {
			return nil, err
		}
		if done {
			return index, nil
		}
	}
}

func (p *docParser) parseDirEntry() (DirEntry, error) {
	var entry DirEntry
	if err := p.expect('{'); err != nil {
		return entry, err
	}

	var haveFiles, haveDirs bool
	for {
		c, err := p.peek()
		if err != nil {
			return entry, err
		}
		if c == '}' {
			p.pos++
			break
		}

		key, err := p.parseString()
		if err != nil {
			return entry, err
		}
		if err := p.expect(':'); err != nil {
			return entry, err
		}

		switch key {
		case "files":
			entry.Files, err = p.parseStringList()
			haveFiles = true
		case "dirs":
			entry.Dirs, err = p.parseStringList()
			haveDirs = true
		default:
			return entry, p.errorf("unexpected directory entry key %q", key)
		}
		if err != nil {
			return entry, err
		}

		done, err := p.endOfItem('}')
		if err != nil {
			return entry, err
		}
		if done {
			break
		}
	}

	if !haveFiles || !haveDirs {
		return entry, p.errorf("directory entry must contain both files and dirs")
	}
	return entry, nil
}

func (p *docParser) parseStringList() ([]string, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}

	list := []string{}
	for {
		c, err := p.peek()
		if err != nil {
			return nil, err
		}
		if c == ']' {
			p.pos++
			return list, nil
		}

		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		list = append(list, s)

		done, err := p.endOfItem(']')
		if err != nil {
			return nil, err
		}
		if done {
			return list, nil
		}
	}
}

func (p *docParser) parseString() (string, error) {
	c, err := p.peek()
	if err != nil {
		return "", err
	}
	if c == 'b' {
		return "", p.errorf("expected string, found byte-string")
	}
	raw, err := p.parseQuoted()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (p *docParser) parseBytes() ([]byte, error) {
	c, err := p.peek()
	if err != nil {
		return nil, err
	}
	if c != 'b' {
		return nil, p.errorf("expected byte-string")
	}
	p.pos++
	return p.parseQuoted()
}

// parseQuoted decodes one quoted scalar, positioned at the opening quote.
func (p *docParser) parseQuoted() ([]byte, error) {
	p.skipSpace()
	if p.pos >= len(p.data) {
		return nil, p.errorf("unexpected end of document")
	}
	quote := p.data[p.pos]
	if quote != '\'' && quote != '"' {
		return nil, p.errorf("expected quote, found %q", quote)
	}
	p.pos++

	out := make([]byte, 0, 16)
	for {
		if p.pos >= len(p.data) {
			return nil, p.errorf("unterminated string")
		}
		c := p.data[p.pos]
		switch c {
		case quote:
			p.pos++
			return out, nil
		case '\\':
			p.pos++
			b, err := p.parseEscape()
			if err != nil {
				return nil, err
			}
			out = append(out, b)
		default:
			out = append(out, c)
			p.pos++
		}
	}
}

func (p *docParser) parseEscape() (byte, error) {
	if p.pos >= len(p.data) {
		return 0, p.errorf("unterminated escape")
	}
	c := p.data[p.pos]
	p.pos++
	switch c {
	case '\\', '\'', '"':
		return c, nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case '0':
		return 0, nil
	case 'x':
		if p.pos+2 > len(p.data) {
			return 0, p.errorf("truncated hex escape")
		}
		hi, ok1 := hexVal(p.data[p.pos])
		lo, ok2 := hexVal(p.data[p.pos+1])
		if !ok1 || !ok2 {
			return 0, p.errorf("invalid hex escape")
		}
		p.pos += 2
		return hi<<4 | lo, nil
	default:
		return 0, p.errorf("unsupported escape \\%c", c)
	}
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// encodeDocument is the serializer counterpart of parseDocument. Output
// is deterministic: top-level keys in tree/dirinfo order, mapping keys
// sorted, list order preserved.
func encodeDocument(doc *Document) []byte {
	out := make([]byte, 0, 256)
	out = append(out, "{'tree': {"...)

	for i, key := range sortedKeys(doc.Tree) {
		if i > 0 {
			out = append(out, ", "...)
		}
		out = appendQuoted(out, []byte(key))
		out = append(out, ": b"...)
		out = appendQuoted(out, doc.Tree[key])
	}

	out = append(out, "}, 'dirinfo': {"...)
	for i, key := range sortedKeys(doc.DirIndex) {
		if i > 0 {
			out = append(out, ", "...)
		}
		entry := doc.DirIndex[key]
		out = appendQuoted(out, []byte(key))
		out = append(out, ": {'files': ["...)
		for j, name := range entry.Files {
			if j > 0 {
				out = append(out, ", "...)
			}
			out = appendQuoted(out, []byte(name))
		}
		out = append(out, "], 'dirs': ["...)
		for j, name := range entry.Dirs {
			if j > 0 {
				out = append(out, ", "...)
			}
			out = appendQuoted(out, []byte(name))
		}
		out = append(out, "]}"...)
	}

	out = append(out, "}}"...)
	return out
}

func appendQuoted(out, raw []byte) []byte {
	out = append(out, '\'')
	for _, c := range raw {
		switch {
		case c == '\\':
			out = append(out, '\\', '\\')
		case c == '\'':
			out = append(out, '\\', '\'')
		case c == '\n':
			out = append(out, '\\', 'n')
		case c == '\r':
			out = append(out, '\\', 'r')
		case c == '\t':
			out = append(out, '\\', 't')
		case c < 0x20 || c > 0x7e:
			out = append(out, fmt.Sprintf("\\x%02x", c)...)
		default:
			out = append(out, c)
		}
	}
	return append(out, '\'')
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
