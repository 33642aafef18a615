// Package jsonl 提供gzip压缩的JSON Lines文件的顺序读写
// 两个流水线阶段之间通过这种文件交接数据
package jsonl

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Reader 逐行读取gzip压缩的JSON Lines文件
// 读取句柄在整个运行期间持有，结束或出错时由调用方关闭
type Reader struct {
	file *os.File
	gz   *gzip.Reader
	br   *bufio.Reader
}

// NewReader 打开输入文件
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	gz, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}

	return &Reader{
		file: file,
		gz:   gz,
		// 页面HTML一行可达数MB，不使用带长度上限的Scanner
		br: bufio.NewReaderSize(gz, 1<<20),
	}, nil
}

// Next 读取下一行并反序列化到v
// 输入结束时返回io.EOF；行内容不是合法JSON时返回错误
func (r *Reader) Next(v interface{}) error {
	line, err := r.br.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return fmt.Errorf("failed to read line: %w", err)
		}
		// 文件末尾可能有一个不带换行符的残留行
		if strings.TrimSpace(line) == "" {
			return io.EOF
		}
	}

	if err := json.Unmarshal([]byte(line), v); err != nil {
		return fmt.Errorf("failed to decode line: %w", err)
	}
	return nil
}

// Close 关闭读取句柄
func (r *Reader) Close() error {
	if err := r.gz.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

// Writer 逐行写出gzip压缩的JSON Lines文件
type Writer struct {
	file *os.File
	gz   *gzip.Writer
	bw   *bufio.Writer
	enc  *json.Encoder
}

// NewWriter 创建输出文件
func NewWriter(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	gz := gzip.NewWriter(file)
	bw := bufio.NewWriterSize(gz, 1<<20)
	enc := json.NewEncoder(bw)
	// 保留非ASCII字符原文输出
	enc.SetEscapeHTML(false)

	return &Writer{
		file: file,
		gz:   gz,
		bw:   bw,
		enc:  enc,
	}, nil
}

// Write 把v序列化为一行JSON写出
func (w *Writer) Write(v interface{}) error {
	if err := w.enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return nil
}

// Close 冲刷缓冲并关闭写出句柄
func (w *Writer) Close() error {
	if err := w.bw.Flush(); err != nil {
		w.gz.Close()
		w.file.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if err := w.gz.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to close gzip stream: %w", err)
	}
	return w.file.Close()
}
