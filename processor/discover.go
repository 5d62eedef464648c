package processor

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// sourceExt 是被扫描源文件的扩展名
const sourceExt = ".py"

// DiscoverFiles 递归查找根目录下所有目标源文件路径。
// 路径中含有任一忽略子串的文件被排除；结果按路径排序，
// 保证后续节点插入顺序在多次运行间可复现。
func DiscoverFiles(root string, ignore []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != sourceExt {
			return nil
		}
		if isPathIgnored(path, ignore) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func isPathIgnored(path string, ignore []string) bool {
	for _, item := range ignore {
		if strings.Contains(path, item) {
			return true
		}
	}
	return false
}
