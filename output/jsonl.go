package output

import (
	"encoding/json"
	"io"

	"github.com/lyubolp/py2uml/graph"
	"github.com/lyubolp/py2uml/model"
)

// JSONLWriter 逐行输出 JSON 对象
type JSONLWriter struct {
	encoder *json.Encoder
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		encoder: json.NewEncoder(w),
	}
}

func (w *JSONLWriter) Write(v interface{}) error {
	return w.encoder.Encode(v)
}

// ExportClassModels 把类模型逐个导出为 JSON Lines
func ExportClassModels(out io.Writer, models []model.ClassModel) (int, error) {
	writer := NewJSONLWriter(out)
	count := 0

	for _, m := range models {
		if err := writer.Write(m); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// dependencyRecord 是依赖边的导出结构
type dependencyRecord struct {
	Source model.PythonModule `json:"Source"`
	Target model.PythonModule `json:"Target"`
}

// ExportDependencies 先导出全部模块节点、再导出全部依赖边，均按插入顺序
func ExportDependencies(out io.Writer, g *graph.Graph[model.PythonModule]) (int, error) {
	writer := NewJSONLWriter(out)
	count := 0

	for _, node := range g.Nodes() {
		if err := writer.Write(node); err != nil {
			return count, err
		}
		count++
	}

	for _, node := range g.Nodes() {
		targets, ok := g.Edges(node)
		if !ok {
			continue
		}
		for _, target := range targets {
			if err := writer.Write(dependencyRecord{Source: node, Target: target}); err != nil {
				return count, err
			}
			count++
		}
	}

	return count, nil
}
