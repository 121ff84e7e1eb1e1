package resource

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrMalformedManifest 表示清单内容不是合法的 UTF-8 文本。
var ErrMalformedManifest = errors.New("malformed manifest")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadLines 读取整个文件并按行拆分：\n、\r\n 与单独的 \r 都视为换行，去掉 UTF-8 BOM，
// 末尾换行不会产生空行，行内容不做其它处理。
func ReadLines(h *Handle) ([]string, error) {
	f, err := h.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", h.Name(), err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: %w", h.Name(), ErrMalformedManifest)
	}

	lines := make([]string, 0, bytes.Count(data, []byte{'\n'})+1)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), len(data)+1)
	scanner.Split(scanLines)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", h.Name(), err)
	}
	return lines, nil
}

// scanLines 与 bufio.ScanLines 类似，但单独的 \r 也结束一行。
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// \r 位于缓冲区末尾，需要更多数据判断是否为 \r\n。
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
