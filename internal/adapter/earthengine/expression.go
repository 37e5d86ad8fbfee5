package earthengine

import (
	"fmt"

	"github.com/couchcryptid/sea-level-dashboard/internal/domain"
)

// Earth Engine expression-graph serialization. Each value node is a
// constant, a reference to another named node, or a function invocation;
// the graph's "result" key names the node to render.

type valueNode map[string]any

func constant(v any) valueNode {
	return valueNode{"constantValue": v}
}

func reference(name string) valueNode {
	return valueNode{"valueReference": name}
}

func invoke(function string, args map[string]any) valueNode {
	return valueNode{
		"functionInvocationValue": map[string]any{
			"functionName": function,
			"arguments":    args,
		},
	}
}

// floodExpression serializes the overlay computation: NASADEM elevation at
// or below the threshold, self-masked, applied as a mask over the mean 2020
// WorldPop raster, visualized with the heatmap ramp.
func floodExpression(thresholdM float64) map[string]any {
	popStart := fmt.Sprintf("%d-01-01", domain.PopulationYear)
	popEnd := fmt.Sprintf("%d-01-01", domain.PopulationYear+1)

	return map[string]any{
		"values": map[string]any{
			"elevation": invoke("Image.select", map[string]any{
				"input":         invoke("Image.load", map[string]any{"id": constant(domain.ElevationAsset)}),
				"bandSelectors": constant([]string{domain.ElevationBand}),
			}),
			"floodMask": invoke("Image.selfMask", map[string]any{
				"image": invoke("Image.lte", map[string]any{
					"image1": reference("elevation"),
					"image2": invoke("Image.constant", map[string]any{"value": constant(thresholdM)}),
				}),
			}),
			"population": invoke("reduce.mean", map[string]any{
				"collection": invoke("ImageCollection.filterDate", map[string]any{
					"collection": invoke("ImageCollection.load", map[string]any{"id": constant(domain.PopulationAsset)}),
					"start":      constant(popStart),
					"end":        constant(popEnd),
				}),
			}),
			"affected": invoke("Image.updateMask", map[string]any{
				"image": reference("population"),
				"mask":  reference("floodMask"),
			}),
			"visualized": invoke("Image.visualize", map[string]any{
				"image":   reference("affected"),
				"min":     constant(domain.HeatmapVis.Min),
				"max":     constant(domain.HeatmapVis.Max),
				"palette": constant(domain.HeatmapVis.Palette),
			}),
		},
		"result": "visualized",
	}
}
