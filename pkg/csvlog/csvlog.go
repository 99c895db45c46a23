package csvlog

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
)

// rw-r--r-- (擁有者讀寫，其他人唯讀)
const FileMode fs.FileMode = 0644

// Append 以附加模式寫入多筆 CSV 紀錄，每次呼叫都會開檔、寫入、關檔
// O_APPEND 每次寫入時自動跳到文件末尾
// O_CREATE 如果文件不存在則建立
//
// 欄位內含逗號、引號或換行時依 RFC 4180 加上引號
func Append(path string, records ...[]string) (err error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, FileMode)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(file)
	// WriteAll 會 Flush 並回傳 w.Error()
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return file.Sync()
}

// ReadAll 逐筆讀取所有紀錄
// callback 一次處理一筆，避免一次將所有資料載入記憶體
// 檔案不存在時回傳 fs.ErrNotExist
func ReadAll(path string, callback func(record []string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	r := csv.NewReader(file)
	// 各行欄位數由呼叫端檢查
	r.FieldsPerRecord = -1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := callback(record); err != nil {
			return err
		}
	}
}
