// Package widget provides the two input controls the deck needs: a push
// Button with press feedback and a horizontal integer Slider with paired
// step buttons. Both are plain recdeck node subtrees; add Node to a scene
// and they animate themselves through Node.OnUpdate.
package widget
