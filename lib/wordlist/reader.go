// Package wordlist reads candidate wordlists: one candidate per line, with
// surrounding whitespace trimmed. Files may be gzip, zstd or lz4 compressed
// and in any WHATWG-labelled text encoding.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
)

// DefaultEncoding is assumed when no encoding is declared.
const DefaultEncoding = "utf-8"

const maxLineSize = 1 << 20 // Longest accepted wordlist line in bytes

var errDirectory = errors.New("is a directory")

// Reader yields the trimmed lines of a wordlist. It is not safe for concurrent use.
type Reader struct {
	path    string
	file    *os.File
	decomp  io.Closer
	scanner *bufio.Scanner
	compr   Compression
	native  bool // native is true when lines are UTF-8 validated instead of transcoded.

	line   string
	number int
	err    error
}

// ResolveEncoding maps an encoding label to a decoder. Empty and UTF-8 labels
// return nil, meaning bytes are validated as UTF-8 rather than transcoded.
func ResolveEncoding(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(strings.ToLower(label))
	if label == "" || label == "utf-8" || label == "utf8" {
		return nil, nil //nolint:nilnil // nil encoding means native UTF-8
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, searcherr.Config(fmt.Sprintf("resolve encoding %q", label), err)
	}

	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return nil, nil //nolint:nilnil // alias of utf-8
	}

	return enc, nil
}

// Open opens path for reading in the given encoding label. A missing path or
// a directory is a file-not-found error; an unknown label is a configuration error.
func Open(path, encodingLabel string) (*Reader, error) {
	enc, err := ResolveEncoding(encodingLabel)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, searcherr.NotFound(path, err)
	}

	if info.IsDir() {
		return nil, searcherr.NotFound(path, errDirectory)
	}

	f, err := os.Open(path) //nolint:gosec // wordlist path is user supplied
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, searcherr.NotFound(path, err)
		}

		return nil, searcherr.IO("open wordlist", path, err)
	}

	compr := DetectCompression(path)

	src, decomp, err := decompress(f, compr)
	if err != nil {
		_ = f.Close()

		return nil, searcherr.Encoding("decompress wordlist", path, err)
	}

	if enc != nil {
		src = transform.NewReader(src, enc.NewDecoder())
	}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	return &Reader{
		path:    path,
		file:    f,
		decomp:  decomp,
		scanner: scanner,
		compr:   compr,
		native:  enc == nil,
	}, nil
}

// Next advances to the next line. It returns false at end of file or on the
// first error, which Err then reports.
//
// x/text decoders replace undecodable input with U+FFFD instead of failing,
// so for a non-UTF-8 encoding a U+FFFD in the decoded line is the decode
// failure. A transcoded wordlist therefore cannot carry a literal U+FFFD:
// such a line is reported as an encoding error like any other bad input.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}

	if !r.scanner.Scan() {
		r.err = r.scanError(r.scanner.Err())

		return false
	}

	r.number++

	raw := r.scanner.Text()
	if r.number == 1 {
		raw = strings.TrimPrefix(raw, "\ufeff")
	}

	if r.native && !utf8.ValidString(raw) {
		r.err = searcherr.Encoding(fmt.Sprintf("decode line %d as utf-8", r.number), r.path, nil)

		return false
	}

	if !r.native && strings.ContainsRune(raw, utf8.RuneError) {
		r.err = searcherr.Encoding(fmt.Sprintf("decode line %d", r.number), r.path, nil)

		return false
	}

	r.line = strings.TrimSpace(raw)

	return true
}

// Line returns the current trimmed line.
func (r *Reader) Line() string {
	return r.line
}

// LineNumber returns the 1-based number of the current line.
func (r *Reader) LineNumber() int {
	return r.number
}

// Err returns the first error encountered, or nil at a clean end of file.
func (r *Reader) Err() error {
	return r.err
}

// Path returns the wordlist path.
func (r *Reader) Path() string {
	return r.path
}

// Close releases the decompressor and the file.
func (r *Reader) Close() error {
	decompErr := r.decomp.Close()

	if err := r.file.Close(); err != nil {
		return searcherr.IO("close wordlist", r.path, err)
	}

	if decompErr != nil {
		return searcherr.IO("close wordlist", r.path, decompErr)
	}

	return nil
}

func (r *Reader) scanError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bufio.ErrTooLong):
		return searcherr.Encoding(fmt.Sprintf("read line %d", r.number+1), r.path, err)
	case r.compr != CompressionNone:
		return searcherr.Encoding("decompress wordlist", r.path, err)
	default:
		return searcherr.IO("read wordlist", r.path, err)
	}
}
