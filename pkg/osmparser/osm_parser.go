package osmparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

type edgeKey struct {
	from, to datastructure.Index
}

type OsmParser struct {
	mode            TravelMode
	wayNodeMap      map[int64]NodeType
	acceptedNodeMap map[int64]NodeCoord
	barrierNodes    map[int64]bool
	nodeIDMap       map[int64]datastructure.Index
	nodeToOsmId     map[datastructure.Index]int64
	maxNodeID       int64

	scannedEdges []Edge
	edgeSet      map[edgeKey]int // (u,v) -> index in scannedEdges
}

func NewOSMParser(mode TravelMode) *OsmParser {
	return &OsmParser{
		mode:            mode,
		wayNodeMap:      make(map[int64]NodeType),
		acceptedNodeMap: make(map[int64]NodeCoord),
		barrierNodes:    make(map[int64]bool),
		nodeIDMap:       make(map[int64]datastructure.Index),
		nodeToOsmId:     make(map[datastructure.Index]int64),
		scannedEdges:    make([]Edge, 0),
		edgeSet:         make(map[edgeKey]int),
	}
}

// Parse. build the road graph of the travel mode from an openstreetmap extract.
// .osm/.xml files are read as osm xml, everything else as osm pbf.
func (p *OsmParser) Parse(ctx context.Context, mapFile string, logger *zap.Logger) (*datastructure.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open map file %s: %w", mapFile, err)
	}
	defer f.Close()

	xml := strings.HasSuffix(mapFile, ".osm") || strings.HasSuffix(mapFile, ".xml")
	return p.ParseReader(ctx, f, xml, logger)
}

// ParseReader. two passes over r: the first finds junction nodes, the second splits ways at junctions into edges.
func (p *OsmParser) ParseReader(ctx context.Context, r io.ReadSeeker, xml bool, logger *zap.Logger) (*datastructure.Graph, error) {
	newScanner := func() osm.Scanner {
		if xml {
			return osmxml.New(ctx, r)
		}
		return osmpbf.New(ctx, r, 0)
	}

	scanner := newScanner()
	// must not be parallel
	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if p.registerWay(way) {
			if (countWays+1)%50000 == 0 {
				logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
			}
			countWays++
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("scanning openstreetmap ways: %w", err)
	}
	scanner.Close()

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	// nodes come before ways in osm files, so the second pass sees every coordinate before it needs it.
	scanner = newScanner()
	defer scanner.Close()

	countWays = 0
	countNodes := 0
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			if (countNodes+1)%500000 == 0 {
				logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes+1)
			}
			countNodes++
			p.registerNode(o)
		case *osm.Way:
			if len(o.Nodes) < 2 || !acceptOsmWay(o, p.mode) {
				continue
			}
			if (countWays+1)%100000 == 0 {
				logger.Sugar().Infof("processing openstreetmap ways: %d...", countWays+1)
			}
			countWays++
			p.processWay(o)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("processing openstreetmap ways: %w", err)
	}

	graph := p.BuildGraph(p.scannedEdges, uint32(len(p.nodeIDMap)))

	logger.Sugar().Infof("number of vertices: %v", graph.NumberOfVertices())
	logger.Sugar().Infof("number of edges: %v", graph.NumberOfEdges())

	return graph, nil
}

// registerWay. first pass: a node shared by two accepted ways (or visited twice by one) is a junction.
func (p *OsmParser) registerWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 || !acceptOsmWay(way, p.mode) {
		return false
	}
	for i, node := range way.Nodes {
		if _, ok := p.wayNodeMap[int64(node.ID)]; !ok {
			if i == 0 || i == len(way.Nodes)-1 {
				p.wayNodeMap[int64(node.ID)] = END_NODE
			} else {
				p.wayNodeMap[int64(node.ID)] = BETWEEN_NODE
			}
		} else {
			p.wayNodeMap[int64(node.ID)] = JUNCTION_NODE
		}
	}
	return true
}

func (p *OsmParser) registerNode(node *osm.Node) {
	p.maxNodeID = max(p.maxNodeID, int64(node.ID))

	if _, ok := p.wayNodeMap[int64(node.ID)]; ok {
		p.acceptedNodeMap[int64(node.ID)] = NodeCoord{
			lat: node.Lat,
			lon: node.Lon,
		}
	}

	accessType := node.Tags.Find("access")
	barrierType := node.Tags.Find("barrier")
	if _, ok := acceptedBarrierType[barrierType]; ok && accessType == "no" && p.mode == DRIVE {
		p.barrierNodes[int64(node.ID)] = true
	}
}

// processWay. second pass: split the way at junction nodes and emit one edge per segment and direction.
// nodes missing from the extract also end a segment.
func (p *OsmParser) processWay(way *osm.Way) {
	direction := wayDirectionOf(way, p.mode)
	speed := waySpeed(way, p.mode)

	waySegment := []node{}
	for _, wayNode := range way.Nodes {
		coord, ok := p.acceptedNodeMap[int64(wayNode.ID)]
		if !ok {
			if len(waySegment) > 1 {
				p.processSegment(waySegment, speed, direction)
			}
			waySegment = []node{}
			continue
		}
		nodeData := node{
			id:    int64(wayNode.ID),
			coord: coord,
		}
		if p.isJunctionNode(nodeData.id) {
			waySegment = append(waySegment, nodeData)
			p.processSegment(waySegment, speed, direction)
			waySegment = []node{nodeData}
		} else {
			waySegment = append(waySegment, nodeData)
		}
	}
	if len(waySegment) > 1 {
		p.processSegment(waySegment, speed, direction)
	}
}

func (p *OsmParser) processSegment(segment []node, speed float64, direction wayDirection) {
	if len(segment) < 2 {
		return
	}
	if len(segment) == 2 && segment[0].id == segment[1].id {
		// skip
		return
	} else if len(segment) > 2 && segment[0].id == segment[len(segment)-1].id {
		// loop
		p.splitAtBarriers(segment[0:len(segment)-1], speed, direction)
		p.splitAtBarriers(segment[len(segment)-2:], speed, direction)
	} else {
		p.splitAtBarriers(segment, speed, direction)
	}
}

func (p *OsmParser) splitAtBarriers(segment []node, speed float64, direction wayDirection) {
	waySegment := []node{}
	for i := 0; i < len(segment); i++ {
		nodeData := segment[i]
		if _, ok := p.barrierNodes[nodeData.id]; ok {
			if len(waySegment) != 0 {
				// if current node is a barrier
				// add the barrier node and process the segment (add edge)
				waySegment = append(waySegment, nodeData)
				p.addEdge(waySegment, speed, direction)
				waySegment = []node{}
			}
			// copy the barrier node but with different id so that previous edge (with barrier) not connected with the new edge
			nodeData = p.copyNode(nodeData)
			waySegment = append(waySegment, nodeData)
		} else {
			waySegment = append(waySegment, nodeData)
		}
	}
	if len(waySegment) > 1 {
		p.addEdge(waySegment, speed, direction)
	}
}

func (p *OsmParser) copyNode(nodeData node) node {
	// use the same coordinate but different id & and the newID is not used
	newMaxID := p.maxNodeID + 1
	p.acceptedNodeMap[newMaxID] = nodeData.coord
	p.maxNodeID++
	return node{
		id:    newMaxID,
		coord: nodeData.coord,
	}
}

func (p *OsmParser) vertexOf(osmID int64) datastructure.Index {
	if id, ok := p.nodeIDMap[osmID]; ok {
		return id
	}
	id := datastructure.Index(len(p.nodeIDMap))
	p.nodeIDMap[osmID] = id
	p.nodeToOsmId[id] = osmID
	return id
}

// addEdge. edge length is the sum of haversine distances along the segment geometry.
func (p *OsmParser) addEdge(segment []node, speed float64, direction wayDirection) {
	from := segment[0]
	to := segment[len(segment)-1]
	if from.id == to.id {
		return
	}

	distance := 0.0
	for i := 1; i < len(segment); i++ {
		distance += geo.CalculateHaversineDistance(segment[i-1].coord.lat, segment[i-1].coord.lon,
			segment[i].coord.lat, segment[i].coord.lon)
	}

	distanceInMeter := distance * 1000
	travelTimeWeight := distanceInMeter / (speed * 1000 / 3600) // in seconds

	u := p.vertexOf(from.id)
	v := p.vertexOf(to.id)

	if !direction.oneWay || direction.forward {
		p.appendEdge(u, v, travelTimeWeight, distanceInMeter)
	}
	if !direction.oneWay || !direction.forward {
		p.appendEdge(v, u, travelTimeWeight, distanceInMeter)
	}
}

// appendEdge. parallel edges between the same pair of vertices collapse into the shortest one.
func (p *OsmParser) appendEdge(u, v datastructure.Index, weight, distance float64) {
	key := edgeKey{from: u, to: v}
	if idx, ok := p.edgeSet[key]; ok {
		if distance < p.scannedEdges[idx].distance {
			p.scannedEdges[idx].distance = distance
			p.scannedEdges[idx].weight = weight
		}
		return
	}
	p.edgeSet[key] = len(p.scannedEdges)
	p.scannedEdges = append(p.scannedEdges, NewEdge(uint32(u), uint32(v), weight, distance,
		uint32(len(p.scannedEdges))))
}

func (p *OsmParser) isJunctionNode(nodeID int64) bool {
	return p.wayNodeMap[nodeID] == JUNCTION_NODE
}
