package communication

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// StreamCommunicator exchanges newline-terminated messages over a byte stream, e.g. stdin and
// stdout.
type StreamCommunicator struct {
	reader *bufio.Reader
	writer *bufio.Writer
}

// NewStreamCommunicator initializes and returns a new StreamCommunicator.
func NewStreamCommunicator(r io.Reader, w io.Writer) *StreamCommunicator {
	return &StreamCommunicator{
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
	}
}

// ReceiveMessage returns the next line without its line ending. A final line without a newline is
// returned as is; io.EOF is only returned once the stream holds nothing more.
func (sc *StreamCommunicator) ReceiveMessage() (string, error) {
	line, err := sc.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// SendMessage writes message as is and flushes it.
func (sc *StreamCommunicator) SendMessage(message string) error {
	if _, err := sc.writer.WriteString(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := sc.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush message: %w", err)
	}
	return nil
}
