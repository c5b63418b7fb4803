package codec

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"sort"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

const jpegICCPrefix = "ICC_PROFILE\x00"

// ExtractICC returns the embedded ICC profile from raw PNG or JPEG bytes, or
// nil when none is present or the container is malformed. Extraction is best
// effort: a broken profile chunk is treated as absent, not as an error.
func ExtractICC(data []byte, format SourceFormat) []byte {
	switch format {
	case FormatPNG:
		return extractPNGICC(data)
	case FormatJPEG:
		return extractJPEGICC(data)
	}
	return nil
}

// extractPNGICC scans PNG chunks for iCCP: a NUL-terminated profile name, a
// compression method byte (0 = zlib), then the deflated profile.
func extractPNGICC(data []byte) []byte {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil
	}
	pos := len(pngSignature)

	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		typ := string(data[pos+4 : pos+8])
		start := pos + 8
		if start+length > len(data) {
			return nil
		}
		chunk := data[start : start+length]

		switch typ {
		case "iCCP":
			nul := bytes.IndexByte(chunk, 0)
			if nul < 0 || nul+2 > len(chunk) || chunk[nul+1] != 0 {
				return nil
			}
			zr, err := zlib.NewReader(bytes.NewReader(chunk[nul+2:]))
			if err != nil {
				return nil
			}
			defer zr.Close()
			profile, err := io.ReadAll(zr)
			if err != nil {
				return nil
			}
			return profile
		case "IDAT", "IEND":
			// iCCP must precede image data.
			return nil
		}

		pos = start + length + 4 // skip CRC
	}
	return nil
}

// extractJPEGICC walks JPEG markers collecting APP2 ICC_PROFILE segments and
// reassembles the profile in sequence order (profiles over 64 KB span
// multiple segments).
func extractJPEGICC(data []byte) []byte {
	if len(data) < 2 || data[0] != 0xff || data[1] != 0xd8 {
		return nil
	}

	type iccSegment struct {
		seq  int
		data []byte
	}
	var segments []iccSegment

	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != 0xff {
			return nil
		}
		marker := data[pos+1]

		switch {
		case marker == 0xd9 || marker == 0xda:
			// EOI or start of scan: no more metadata segments.
			pos = len(data)
			continue
		case marker == 0x01 || (marker >= 0xd0 && marker <= 0xd7):
			pos += 2
			continue
		}

		length := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		if length < 2 || pos+2+length > len(data) {
			return nil
		}
		payload := data[pos+4 : pos+2+length]

		if marker == 0xe2 && bytes.HasPrefix(payload, []byte(jpegICCPrefix)) {
			body := payload[len(jpegICCPrefix):]
			if len(body) >= 2 {
				segments = append(segments, iccSegment{seq: int(body[0]), data: body[2:]})
			}
		}

		pos += 2 + length
	}

	if len(segments) == 0 {
		return nil
	}
	sort.Slice(segments, func(i, j int) bool { return segments[i].seq < segments[j].seq })

	var profile []byte
	for _, s := range segments {
		profile = append(profile, s.data...)
	}
	return profile
}
