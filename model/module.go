package model

import (
	"fmt"
	"strings"
)

// pkgSeparator 是包路径段之间的分隔符（点分路径）
const pkgSeparator = "."

// PythonModule 描述了依赖图中的一个模块节点。
// Name 是最后一个路径段（模块/文件名去扩展名），Packages 是其余路径段
// 以点号连接后的字符串（空串表示位于项目根目录）。
// 两个字段全部相等时两个值相等，该相等性即依赖图的节点身份。
// 注意：Packages 存为连接后的字符串而非切片，以保持结构体可比较、
// 可以直接作为泛型图的键使用。
type PythonModule struct {
	Name     string `json:"Name"`
	Packages string `json:"Packages"`
}

// NewPythonModule 由模块名和包路径段构造一个 PythonModule
func NewPythonModule(name string, packages []string) PythonModule {
	return PythonModule{
		Name:     name,
		Packages: strings.Join(packages, pkgSeparator),
	}
}

// PackageParts 返回包路径段（从根到叶）。根目录模块返回 nil。
func (m PythonModule) PackageParts() []string {
	if m.Packages == "" {
		return nil
	}
	return strings.Split(m.Packages, pkgSeparator)
}

// Path 返回完整点分路径（包路径段 + 模块名）
func (m PythonModule) Path() []string {
	return append(m.PackageParts(), m.Name)
}

func (m PythonModule) String() string {
	return fmt.Sprintf("Module '%s' in package [%s]", m.Name, m.Packages)
}
