package png

import (
	"bytes"
	"errors"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// ErrInflateFailed is returned when the zlib stream backing an IDAT (or a
// compressed ancillary chunk) cannot be decoded.
var ErrInflateFailed = errors.New("png: zlib inflate failed")

// zlibReaderPoolItem pairs a pooled zlib reader with the byte-slice reader
// feeding it, mirroring the teacher's compression/zip.go ZIPDecompressTo.
type zlibReaderPoolItem struct {
	reader io.ReadCloser
	srcBuf *bytes.Reader
}

var zlibReaderPool = sync.Pool{
	New: func() any {
		return &zlibReaderPoolItem{srcBuf: bytes.NewReader(nil)}
	},
}

var zlibWriterPool = sync.Pool{
	New: func() any {
		buf := new(bytes.Buffer)
		w, _ := zlib.NewWriterLevel(buf, zlib.DefaultCompression)
		return &zlibWriterPoolItem{writer: w, buf: buf}
	},
}

type zlibWriterPoolItem struct {
	writer *zlib.Writer
	buf    *bytes.Buffer
}

// inflateExact decompresses src, which must inflate to exactly expectedSize
// bytes (the scanline-stream length computed from the header per spec.md
// §4.3). A corrupt stream, a short result and a result longer than
// expectedSize all return the same ErrInflateFailed, which Decode reports as
// INFLATE_FAILED; the error does not tell a short stream from a long one.
func inflateExact(src []byte, expectedSize int) ([]byte, error) {
	item := zlibReaderPool.Get().(*zlibReaderPoolItem)
	defer zlibReaderPool.Put(item)

	item.srcBuf.Reset(src)
	var err error
	if item.reader == nil {
		item.reader, err = zlib.NewReader(item.srcBuf)
	} else if resetter, ok := item.reader.(zlib.Resetter); ok {
		err = resetter.Reset(item.srcBuf, nil)
	} else {
		item.reader.Close()
		item.reader, err = zlib.NewReader(item.srcBuf)
	}
	if err != nil {
		return nil, ErrInflateFailed
	}

	dst := make([]byte, expectedSize)
	n, err := io.ReadFull(item.reader, dst)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, ErrInflateFailed
	}
	if n != expectedSize {
		return nil, ErrInflateFailed
	}
	// Confirm there is no trailing excess data beyond expectedSize.
	var probe [1]byte
	if extra, _ := item.reader.Read(probe[:]); extra > 0 {
		return nil, ErrInflateFailed
	}
	return dst, nil
}

// inflateUnknownSize decompresses src without a known output length, for
// ancillary chunks (iCCP profiles, zTXt/iTXt compressed text) whose
// decompressed size isn't derivable from the header.
func inflateUnknownSize(src []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, ErrInflateFailed
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrInflateFailed
	}
	return out, nil
}

// deflateDefault compresses src with zlib at the default compression level,
// using a pooled writer to avoid an allocation per call on the encode path.
func deflateDefault(src []byte) ([]byte, error) {
	item := zlibWriterPool.Get().(*zlibWriterPoolItem)
	defer zlibWriterPool.Put(item)

	item.buf.Reset()
	item.writer.Reset(item.buf)

	if _, err := item.writer.Write(src); err != nil {
		return nil, err
	}
	if err := item.writer.Close(); err != nil {
		return nil, err
	}

	out := make([]byte, item.buf.Len())
	copy(out, item.buf.Bytes())
	return out, nil
}
